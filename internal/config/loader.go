package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment override. A double underscore
// separates nested keys: INVESTORS_HEADER__MAX_HEIGHT sets header.max_height.
const EnvPrefix = "INVESTORS_"

// DefaultFiles are looked up in the working directory when no config file is
// given explicitly.
var DefaultFiles = []string{"investors.yaml", "investors.yml"}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"data":      "data_file",
	"locale":    "locale",
	"log-level": "log.level",
	"log-file":  "log.file",
}

// Loaded is a loaded configuration and where it came from.
type Loaded struct {
	*Config
	// File is the config file that was read, or empty.
	File string
}

// Load builds the configuration. Precedence, highest first: flags that were
// set explicitly, environment, config file, defaults. An explicit cfgFile
// must exist; the default files are optional.
func Load(cfgFile string, flags *pflag.FlagSet) (*Loaded, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	path, err := findFile(cfgFile)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Loaded{Config: &cfg, File: path}, nil
}

// envKey turns INVESTORS_SCROLL__SPRING__DAMPING into scroll.spring.damping.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func findFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}
	for _, name := range DefaultFiles {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	return "", nil
}

func defaultMap() map[string]interface{} {
	d := Default()
	return map[string]interface{}{
		"data_file":               d.DataFile,
		"locale":                  d.Locale,
		"header.max_height":       d.Header.MaxHeight,
		"header.min_height":       d.Header.MinHeight,
		"header.title_bar_height": d.Header.TitleBarHeight,
		"header.px_per_row":       d.Header.PxPerRow,
		"scroll.step":             d.Scroll.Step,
		"scroll.card_height":      d.Scroll.CardHeight,
		"scroll.overscroll":       d.Scroll.Overscroll,
		"scroll.frame_interval":   d.Scroll.FrameInterval.String(),
		"scroll.spring.frequency": d.Scroll.Spring.Frequency,
		"scroll.spring.damping":   d.Scroll.Spring.Damping,
		"criteria.category":       d.Criteria.Category,
		"criteria.sort":           d.Criteria.Sort,
		"log.level":               d.Log.Level,
		"log.file":                d.Log.File,
	}
}
