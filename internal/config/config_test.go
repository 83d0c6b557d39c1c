package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pengelbrecht/investors/internal/investor"
	"github.com/pengelbrecht/investors/internal/scroll"
	"github.com/pengelbrecht/investors/internal/view"
)

// chdir moves into a fresh directory so default config files in the
// package directory cannot leak into a test.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("data", "", "")
	fs.String("locale", DefaultLocale, "")
	fs.String("log-level", DefaultLogLevel, "")
	fs.String("log-file", "", "")
	fs.Bool("watch", false, "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)

	got, err := Load("", nil)
	require.NoError(t, err)
	assert.Empty(t, got.File)
	assert.Equal(t, Default(), got.Config)
}

func TestLoad_File(t *testing.T) {
	dir := chdir(t)
	path := writeFile(t, dir, "custom.yaml", `
data_file: investors.json
locale: en
header:
  max_height: 300
  min_height: 100
scroll:
  frame_interval: 33ms
  spring:
    damping: 1
criteria:
  category: Fintech
  sort: portfolio
`)

	got, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, got.File)
	assert.Equal(t, "investors.json", got.DataFile)
	assert.Equal(t, "en", got.Locale)
	assert.Equal(t, scroll.Bounds{MaxHeaderHeight: 300, MinHeaderHeight: 100, TitleBarHeight: 40}, got.Bounds())
	assert.Equal(t, 33*time.Millisecond, got.Scroll.FrameInterval)
	assert.Equal(t, 1.0, got.Scroll.Spring.Damping)
	assert.Equal(t, DefaultSpringFreq, got.Scroll.Spring.Frequency)

	crit, err := got.InitialCriteria()
	require.NoError(t, err)
	assert.Equal(t, view.Criteria{Category: investor.CategoryFintech, Sort: view.SortByPortfolio}, crit)
}

func TestLoad_DefaultFileInWorkingDir(t *testing.T) {
	dir := chdir(t)
	writeFile(t, dir, "investors.yml", "locale: de\n")

	got, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "investors.yml", got.File)
	assert.Equal(t, "de", got.Locale)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	chdir(t)
	_, err := Load("nope.yaml", nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := chdir(t)
	path := writeFile(t, dir, "c.yaml", "header:\n  max_height: 300\nlocale: en\n")
	t.Setenv("INVESTORS_HEADER__MAX_HEIGHT", "250")
	t.Setenv("INVESTORS_SCROLL__STEP", "30")

	got, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 250.0, got.Header.MaxHeight)
	assert.Equal(t, 30.0, got.Scroll.Step)
	assert.Equal(t, "en", got.Locale)
}

func TestLoad_ChangedFlagsWin(t *testing.T) {
	dir := chdir(t)
	path := writeFile(t, dir, "c.yaml", "locale: en\ndata_file: a.yaml\nlog:\n  level: warn\n")
	t.Setenv("INVESTORS_LOCALE", "de")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--data", "b.json", "--log-level", "debug", "--watch"}))

	got, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "b.json", got.DataFile)
	assert.Equal(t, "debug", got.Log.Level)
	// --locale was not set, so the environment value stands.
	assert.Equal(t, "de", got.Locale)
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := chdir(t)
	path := writeFile(t, dir, "c.yaml", `
header:
  max_height: 50
  min_height: 100
criteria:
  category: Crypto
  sort: rating
`)

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, scroll.ErrInvalidBounds)
	assert.ErrorIs(t, err, view.ErrInvalidCriteria)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad locale", func(c *Config) { c.Locale = "not a locale!" }},
		{"zero px per row", func(c *Config) { c.Header.PxPerRow = 0 }},
		{"zero step", func(c *Config) { c.Scroll.Step = 0 }},
		{"zero card height", func(c *Config) { c.Scroll.CardHeight = 0 }},
		{"negative overscroll", func(c *Config) { c.Scroll.Overscroll = -1 }},
		{"zero frame interval", func(c *Config) { c.Scroll.FrameInterval = 0 }},
		{"zero damping", func(c *Config) { c.Scroll.Spring.Damping = 0 }},
		{"unknown sort", func(c *Config) { c.Criteria.Sort = "rating" }},
	}

	require.NoError(t, Default().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "locale", envKey("INVESTORS_LOCALE"))
	assert.Equal(t, "data_file", envKey("INVESTORS_DATA_FILE"))
	assert.Equal(t, "scroll.spring.damping", envKey("INVESTORS_SCROLL__SPRING__DAMPING"))
}
