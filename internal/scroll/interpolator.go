// Package scroll maps a vertical scroll offset to the visual state of a
// collapsing header.
//
// Every output is a clamped linear interpolation of the offset over
// [0, ScrollDistance], so the header can neither over-expand nor collapse
// past its minimum during overscroll. Update is a pure function of the
// offset and the configured bounds: there is no accumulated state.
package scroll

import (
	"errors"
	"fmt"
	"math"
)

// Defaults observed on the investor list screen.
const (
	DefaultMaxHeaderHeight = 200
	DefaultMinHeaderHeight = 80
	DefaultTitleBarHeight  = 40
)

// Fixed travel of the secondary header rows when fully collapsed.
const (
	searchBarTravel   = -10
	categoryBarTravel = -20
)

// ErrInvalidBounds is wrapped by every bounds validation error.
var ErrInvalidBounds = errors.New("invalid header bounds")

// BoundsError describes an invalid bounds configuration.
type BoundsError struct {
	Bounds Bounds
	Reason string
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("invalid header bounds (max %g, min %g, title bar %g): %s",
		e.Bounds.MaxHeaderHeight, e.Bounds.MinHeaderHeight, e.Bounds.TitleBarHeight, e.Reason)
}

func (e *BoundsError) Unwrap() error {
	return ErrInvalidBounds
}

// Bounds configures the header geometry.
type Bounds struct {
	MaxHeaderHeight float64
	MinHeaderHeight float64
	// TitleBarHeight is the vertical space kept for the title once the
	// header is collapsed.
	TitleBarHeight float64
}

// DefaultBounds returns the 200/80/40 geometry.
func DefaultBounds() Bounds {
	return Bounds{
		MaxHeaderHeight: DefaultMaxHeaderHeight,
		MinHeaderHeight: DefaultMinHeaderHeight,
		TitleBarHeight:  DefaultTitleBarHeight,
	}
}

// ScrollDistance is the offset over which the header collapses.
func (b Bounds) ScrollDistance() float64 {
	return b.MaxHeaderHeight - b.MinHeaderHeight
}

// Validate checks that the bounds describe a collapsible header.
func (b Bounds) Validate() error {
	switch {
	case !isFinite(b.MaxHeaderHeight) || !isFinite(b.MinHeaderHeight) || !isFinite(b.TitleBarHeight):
		return &BoundsError{Bounds: b, Reason: "values must be finite"}
	case b.MinHeaderHeight < 0:
		return &BoundsError{Bounds: b, Reason: "min height must not be negative"}
	case b.TitleBarHeight < 0:
		return &BoundsError{Bounds: b, Reason: "title bar height must not be negative"}
	case b.MaxHeaderHeight <= b.MinHeaderHeight:
		return &BoundsError{Bounds: b, Reason: "max height must exceed min height"}
	}
	return nil
}

// Outputs is the animation state for one scroll offset. Fields are
// independent of each other.
type Outputs struct {
	HeaderHeight          float64 `json:"header_height"`
	HeaderTranslateY      float64 `json:"header_translate_y"`
	HeaderOpacity         float64 `json:"header_opacity"`
	TitleScale            float64 `json:"title_scale"`
	SearchBarTranslateY   float64 `json:"search_bar_translate_y"`
	CategoryBarOpacity    float64 `json:"category_bar_opacity"`
	CategoryBarTranslateY float64 `json:"category_bar_translate_y"`
}

type curves struct {
	headerHeight          Curve
	headerTranslateY      Curve
	headerOpacity         Curve
	titleScale            Curve
	searchBarTranslateY   Curve
	categoryBarOpacity    Curve
	categoryBarTranslateY Curve
}

func buildCurves(b Bounds) curves {
	d := b.ScrollDistance()
	full := []float64{0, d}
	return curves{
		headerHeight:          mustCurve(full, []float64{b.MaxHeaderHeight, b.MinHeaderHeight}),
		headerTranslateY:      mustCurve(full, []float64{0, -(d - b.TitleBarHeight)}),
		headerOpacity:         mustCurve([]float64{0, d / 2, d}, []float64{1, 0.8, 0.6}),
		titleScale:            mustCurve(full, []float64{1, 0.9}),
		searchBarTranslateY:   mustCurve(full, []float64{0, searchBarTravel}),
		categoryBarOpacity:    mustCurve(full, []float64{1, 0}),
		categoryBarTranslateY: mustCurve(full, []float64{0, categoryBarTravel}),
	}
}

// Interpolator computes Outputs for scroll offsets under a fixed set of
// bounds. The zero value is not usable; construct with New.
type Interpolator struct {
	bounds Bounds
	curves curves
}

// New validates b and returns a configured Interpolator.
func New(b Bounds) (*Interpolator, error) {
	i := &Interpolator{}
	if err := i.Configure(b); err != nil {
		return nil, err
	}
	return i, nil
}

// Configure replaces the bounds. On error the previous configuration stays
// in effect.
func (i *Interpolator) Configure(b Bounds) error {
	if err := b.Validate(); err != nil {
		return err
	}
	i.bounds = b
	i.curves = buildCurves(b)
	return nil
}

// Bounds returns the configured bounds.
func (i *Interpolator) Bounds() Bounds {
	return i.bounds
}

// ScrollDistance returns max - min header height.
func (i *Interpolator) ScrollDistance() float64 {
	return i.bounds.ScrollDistance()
}

// Update computes the outputs for offset. It accepts any value: negative
// offsets (overscroll) and NaN give the expanded state, offsets past the
// scroll distance give the collapsed state.
func (i *Interpolator) Update(offset float64) Outputs {
	if math.IsNaN(offset) {
		offset = 0
	}
	c := &i.curves
	return Outputs{
		HeaderHeight:          c.headerHeight.At(offset),
		HeaderTranslateY:      c.headerTranslateY.At(offset),
		HeaderOpacity:         c.headerOpacity.At(offset),
		TitleScale:            c.titleScale.At(offset),
		SearchBarTranslateY:   c.searchBarTranslateY.At(offset),
		CategoryBarOpacity:    c.categoryBarOpacity.At(offset),
		CategoryBarTranslateY: c.categoryBarTranslateY.At(offset),
	}
}

// Progress is the collapse fraction in [0, 1] for offset.
func (i *Interpolator) Progress(offset float64) float64 {
	if math.IsNaN(offset) {
		return 0
	}
	return math.Min(1, math.Max(0, offset/i.ScrollDistance()))
}
