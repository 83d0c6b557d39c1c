package scroll

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func newDefault(t *testing.T) *Interpolator {
	t.Helper()
	i, err := New(DefaultBounds())
	require.NoError(t, err)
	return i
}

func TestNew_ScrollDistance(t *testing.T) {
	i := newDefault(t)
	assert.Equal(t, 120.0, i.ScrollDistance())
	assert.Equal(t, DefaultBounds(), i.Bounds())
}

func TestUpdate_Midpoint(t *testing.T) {
	out := newDefault(t).Update(60)

	assert.InDelta(t, 140, out.HeaderHeight, eps)
	assert.InDelta(t, 0.8, out.HeaderOpacity, eps)
	assert.InDelta(t, 0.95, out.TitleScale, eps)
	assert.InDelta(t, -40, out.HeaderTranslateY, eps)
	assert.InDelta(t, -5, out.SearchBarTranslateY, eps)
	assert.InDelta(t, 0.5, out.CategoryBarOpacity, eps)
	assert.InDelta(t, -10, out.CategoryBarTranslateY, eps)
}

func TestUpdate_Endpoints(t *testing.T) {
	i := newDefault(t)

	expanded := i.Update(0)
	assert.Equal(t, Outputs{
		HeaderHeight:          200,
		HeaderTranslateY:      0,
		HeaderOpacity:         1,
		TitleScale:            1,
		SearchBarTranslateY:   0,
		CategoryBarOpacity:    1,
		CategoryBarTranslateY: 0,
	}, expanded)

	collapsed := i.Update(120)
	assert.Equal(t, Outputs{
		HeaderHeight:          80,
		HeaderTranslateY:      -80,
		HeaderOpacity:         0.6,
		TitleScale:            0.9,
		SearchBarTranslateY:   -10,
		CategoryBarOpacity:    0,
		CategoryBarTranslateY: -20,
	}, collapsed)
}

func TestUpdate_OpacityTwoSegments(t *testing.T) {
	i := newDefault(t)
	// First segment: 1 -> 0.8 over [0, 60]; second: 0.8 -> 0.6 over [60, 120].
	assert.InDelta(t, 0.9, i.Update(30).HeaderOpacity, eps)
	assert.InDelta(t, 0.7, i.Update(90).HeaderOpacity, eps)
}

func TestUpdate_OverscrollClampsToExpanded(t *testing.T) {
	i := newDefault(t)
	assert.Equal(t, i.Update(0), i.Update(-50))
	assert.Equal(t, i.Update(0), i.Update(-1e9))
	assert.Equal(t, i.Update(0), i.Update(math.Inf(-1)))
	assert.Equal(t, i.Update(0), i.Update(math.NaN()))
}

func TestUpdate_PastDistanceClampsToCollapsed(t *testing.T) {
	i := newDefault(t)
	assert.Equal(t, i.Update(120), i.Update(121))
	assert.Equal(t, i.Update(120), i.Update(5000))
	assert.Equal(t, i.Update(120), i.Update(math.Inf(1)))
}

func TestUpdate_NoHiddenState(t *testing.T) {
	i := newDefault(t)
	first := i.Update(37)
	for _, x := range []float64{500, -20, 80, 1, 119} {
		i.Update(x)
	}
	assert.Equal(t, first, i.Update(37))
}

func TestProperty_ClampingAndMonotonicity(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 12))
	for round := 0; round < 100; round++ {
		lo := r.Float64() * 200
		hi := lo + 1 + r.Float64()*400
		b := Bounds{MaxHeaderHeight: hi, MinHeaderHeight: lo, TitleBarHeight: r.Float64() * 60}
		i, err := New(b)
		require.NoError(t, err)
		d := i.ScrollDistance()

		start, end := i.Update(0), i.Update(d)
		for k := 0; k < 20; k++ {
			below := -r.Float64() * 1000
			above := d + r.Float64()*1000
			require.Equal(t, start, i.Update(below))
			require.Equal(t, end, i.Update(above))
		}

		// Sweep forward: every channel moves in one direction only.
		prev := i.Update(0)
		for x := 0.0; x <= d; x += d / 50 {
			cur := i.Update(x)
			require.LessOrEqual(t, cur.HeaderHeight, prev.HeaderHeight+eps)
			require.LessOrEqual(t, cur.HeaderOpacity, prev.HeaderOpacity+eps)
			require.LessOrEqual(t, cur.TitleScale, prev.TitleScale+eps)
			require.LessOrEqual(t, cur.SearchBarTranslateY, prev.SearchBarTranslateY+eps)
			require.LessOrEqual(t, cur.CategoryBarOpacity, prev.CategoryBarOpacity+eps)
			require.LessOrEqual(t, cur.CategoryBarTranslateY, prev.CategoryBarTranslateY+eps)

			require.GreaterOrEqual(t, cur.HeaderHeight, lo-eps)
			require.LessOrEqual(t, cur.HeaderHeight, hi+eps)
			require.GreaterOrEqual(t, cur.CategoryBarOpacity, -eps)
			prev = cur
		}
	}
}

func TestBounds_Validate(t *testing.T) {
	tests := []struct {
		name    string
		bounds  Bounds
		wantErr bool
	}{
		{"defaults", DefaultBounds(), false},
		{"zero min", Bounds{MaxHeaderHeight: 10, MinHeaderHeight: 0}, false},
		{"equal heights", Bounds{MaxHeaderHeight: 80, MinHeaderHeight: 80}, true},
		{"inverted", Bounds{MaxHeaderHeight: 80, MinHeaderHeight: 200}, true},
		{"negative min", Bounds{MaxHeaderHeight: 80, MinHeaderHeight: -1}, true},
		{"negative title bar", Bounds{MaxHeaderHeight: 200, MinHeaderHeight: 80, TitleBarHeight: -1}, true},
		{"NaN", Bounds{MaxHeaderHeight: math.NaN(), MinHeaderHeight: 80}, true},
		{"infinite max", Bounds{MaxHeaderHeight: math.Inf(1), MinHeaderHeight: 80}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bounds.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidBounds))
			var be *BoundsError
			assert.True(t, errors.As(err, &be))
		})
	}
}

func TestNew_InvalidBounds(t *testing.T) {
	i, err := New(Bounds{MaxHeaderHeight: 80, MinHeaderHeight: 80})
	assert.Nil(t, i)
	assert.ErrorIs(t, err, ErrInvalidBounds)
}

func TestConfigure_KeepsPreviousOnError(t *testing.T) {
	i := newDefault(t)
	before := i.Update(60)

	err := i.Configure(Bounds{MaxHeaderHeight: 50, MinHeaderHeight: 100})
	require.ErrorIs(t, err, ErrInvalidBounds)
	assert.Equal(t, DefaultBounds(), i.Bounds())
	assert.Equal(t, before, i.Update(60))

	require.NoError(t, i.Configure(Bounds{MaxHeaderHeight: 100, MinHeaderHeight: 50, TitleBarHeight: 10}))
	assert.InDelta(t, 75, i.Update(25).HeaderHeight, eps)
	assert.InDelta(t, -40, i.Update(50).HeaderTranslateY, eps)
}

func TestProgress(t *testing.T) {
	i := newDefault(t)
	assert.Equal(t, 0.0, i.Progress(-10))
	assert.InDelta(t, 0.5, i.Progress(60), eps)
	assert.Equal(t, 1.0, i.Progress(400))
	assert.Equal(t, 0.0, i.Progress(math.NaN()))
}
