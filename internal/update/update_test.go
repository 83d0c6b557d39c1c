package update

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNewerVersion(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"1.2.0", "1.1.9", true},
		{"v2.0.0", "1.9.9", true},
		{"1.10.0", "1.9.0", true},
		{"1.0.1", "1.0.0", true},
		{"1.0.0", "1.0.0", false},
		{"1.0.0", "1.0.1", false},
		{"1", "0.9.9", true},
		{"", "0.0.1", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isNewerVersion(tt.a, tt.b), "%s > %s", tt.a, tt.b)
	}
}

func TestInstallMethodFor(t *testing.T) {
	assert.Equal(t, InstallHomebrew, installMethodFor("/opt/homebrew/Cellar/investors/1.0.0/bin/investors"))
	assert.Equal(t, InstallHomebrew, installMethodFor("/home/linuxbrew/.linuxbrew/bin/investors"))
	assert.Equal(t, InstallScript, installMethodFor("/usr/local/bin/investors"))
	assert.Equal(t, "homebrew", InstallHomebrew.String())
	assert.Equal(t, "unknown", InstallUnknown.String())
}

func TestFormatUpdateNotice(t *testing.T) {
	assert.Equal(t, "Update available: 1.0.0 -> 1.1.0 (run: investors upgrade)",
		formatUpdateNotice("1.0.0", "1.1.0", InstallScript))
	assert.Contains(t, formatUpdateNotice("1.0.0", "1.1.0", InstallHomebrew), "brew upgrade pengelbrecht/tap/investors")
	assert.Equal(t, "Run: investors upgrade", UpdateInstructions(InstallScript))
}

func newTestChecker(t *testing.T, version string) *Checker {
	t.Helper()
	c := NewChecker(version, nil)
	c.cacheDir = t.TempDir()
	return c
}

func TestNotice_FromFreshCache(t *testing.T) {
	c := newTestChecker(t, "v1.0.0")
	c.saveCache(&checkCache{LastCheck: time.Now(), LatestVersion: "1.2.0", UpdateAvailable: true})

	assert.Contains(t, c.Notice(context.Background()), "Update available: 1.0.0 -> 1.2.0")
}

func TestNotice_CachedVersionAlreadyInstalled(t *testing.T) {
	c := newTestChecker(t, "1.2.0")
	c.saveCache(&checkCache{LastCheck: time.Now(), LatestVersion: "1.2.0", UpdateAvailable: true})

	assert.Empty(t, c.Notice(context.Background()))
}

func TestNotice_DevBuild(t *testing.T) {
	c := newTestChecker(t, "dev")
	assert.Empty(t, c.Notice(context.Background()))

	_, found, err := c.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_RoundTrip(t *testing.T) {
	c := newTestChecker(t, "1.0.0")
	assert.Nil(t, c.loadCache())

	when := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c.saveCache(&checkCache{LastCheck: when, LatestVersion: "1.1.0"})
	got := c.loadCache()
	require.NotNil(t, got)
	assert.True(t, when.Equal(got.LastCheck))
	assert.Equal(t, "1.1.0", got.LatestVersion)
	assert.False(t, got.UpdateAvailable)
}
