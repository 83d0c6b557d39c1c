// Package config loads investors settings from defaults, an optional YAML
// file, INVESTORS_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/language"

	"github.com/pengelbrecht/investors/internal/investor"
	"github.com/pengelbrecht/investors/internal/scroll"
	"github.com/pengelbrecht/investors/internal/view"
)

// Config is the root configuration.
type Config struct {
	// DataFile is the investor data file. Empty means the built-in sample.
	DataFile string `koanf:"data_file"`

	// Locale orders names, e.g. "fr" or "en-GB".
	Locale string `koanf:"locale"`

	Header   HeaderConfig   `koanf:"header"`
	Scroll   ScrollConfig   `koanf:"scroll"`
	Criteria CriteriaConfig `koanf:"criteria"`
	Log      LogConfig      `koanf:"log"`
}

// HeaderConfig holds the collapsing header geometry, in logical pixels.
type HeaderConfig struct {
	MaxHeight      float64 `koanf:"max_height"`
	MinHeight      float64 `koanf:"min_height"`
	TitleBarHeight float64 `koanf:"title_bar_height"`
	// PxPerRow converts logical pixels to terminal rows.
	PxPerRow float64 `koanf:"px_per_row"`
}

// ScrollConfig controls scrolling in the browser.
type ScrollConfig struct {
	Step          float64       `koanf:"step"`
	CardHeight    float64       `koanf:"card_height"`
	Overscroll    float64       `koanf:"overscroll"`
	FrameInterval time.Duration `koanf:"frame_interval"`
	Spring        SpringConfig  `koanf:"spring"`
}

// SpringConfig tunes the spring that eases the displayed offset toward the
// target offset.
type SpringConfig struct {
	Frequency float64 `koanf:"frequency"`
	Damping   float64 `koanf:"damping"`
}

// CriteriaConfig holds the initial view criteria.
type CriteriaConfig struct {
	Category string `koanf:"category"`
	Sort     string `koanf:"sort"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `koanf:"level"`
	// File receives logs; empty means stderr for headless commands and no
	// logging for the browser.
	File string `koanf:"file"`
}

// Defaults.
const (
	DefaultLocale        = "fr"
	DefaultPxPerRow      = 20
	DefaultScrollStep    = 60
	DefaultOverscroll    = 40
	DefaultFrameInterval = 16 * time.Millisecond
	DefaultSpringFreq    = 6.0
	DefaultSpringDamping = 0.8
	DefaultLogLevel      = "info"
)

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Locale: DefaultLocale,
		Header: HeaderConfig{
			MaxHeight:      scroll.DefaultMaxHeaderHeight,
			MinHeight:      scroll.DefaultMinHeaderHeight,
			TitleBarHeight: scroll.DefaultTitleBarHeight,
			PxPerRow:       DefaultPxPerRow,
		},
		Scroll: ScrollConfig{
			Step:          DefaultScrollStep,
			CardHeight:    scroll.DefaultCardHeight,
			Overscroll:    DefaultOverscroll,
			FrameInterval: DefaultFrameInterval,
			Spring: SpringConfig{
				Frequency: DefaultSpringFreq,
				Damping:   DefaultSpringDamping,
			},
		},
		Criteria: CriteriaConfig{
			Category: string(investor.CategoryAll),
			Sort:     string(view.SortByName),
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// Bounds returns the header bounds for the interpolator.
func (c *Config) Bounds() scroll.Bounds {
	return scroll.Bounds{
		MaxHeaderHeight: c.Header.MaxHeight,
		MinHeaderHeight: c.Header.MinHeight,
		TitleBarHeight:  c.Header.TitleBarHeight,
	}
}

// Language parses the locale.
func (c *Config) Language() (language.Tag, error) {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("locale %q: %w", c.Locale, err)
	}
	return tag, nil
}

// InitialCriteria returns the configured starting criteria.
func (c *Config) InitialCriteria() (view.Criteria, error) {
	cat, err := view.ParseCategory(c.Criteria.Category)
	if err != nil {
		return view.Criteria{}, err
	}
	key, err := view.ParseSortKey(c.Criteria.Sort)
	if err != nil {
		return view.Criteria{}, err
	}
	return view.Criteria{Category: cat, Sort: key}, nil
}

// Validate reports every problem found, joined.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Bounds().Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Language(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.InitialCriteria(); err != nil {
		errs = append(errs, err)
	}
	if c.Header.PxPerRow <= 0 {
		errs = append(errs, fmt.Errorf("header.px_per_row must be positive, got %g", c.Header.PxPerRow))
	}
	if c.Scroll.Step <= 0 {
		errs = append(errs, fmt.Errorf("scroll.step must be positive, got %g", c.Scroll.Step))
	}
	if c.Scroll.CardHeight <= 0 {
		errs = append(errs, fmt.Errorf("scroll.card_height must be positive, got %g", c.Scroll.CardHeight))
	}
	if c.Scroll.Overscroll < 0 {
		errs = append(errs, fmt.Errorf("scroll.overscroll must not be negative, got %g", c.Scroll.Overscroll))
	}
	if c.Scroll.FrameInterval <= 0 {
		errs = append(errs, fmt.Errorf("scroll.frame_interval must be positive, got %s", c.Scroll.FrameInterval))
	}
	if c.Scroll.Spring.Frequency <= 0 || c.Scroll.Spring.Damping <= 0 {
		errs = append(errs, errors.New("scroll.spring frequency and damping must be positive"))
	}
	return errors.Join(errs...)
}
