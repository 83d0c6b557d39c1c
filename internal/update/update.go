// Package update checks GitHub releases for newer investors builds and
// replaces the running binary.
package update

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/creativeprojects/go-selfupdate"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	repoOwner     = "pengelbrecht"
	repoName      = "investors"
	checkInterval = 24 * time.Hour
	brewFormula   = "pengelbrecht/tap/investors"
)

// ErrDevBuild is returned when asked to update a build without a version.
var ErrDevBuild = errors.New("cannot update dev builds")

// Release describes the newest published release.
type Release struct {
	Version string
	URL     string
}

// InstallMethod represents how investors was installed.
type InstallMethod int

const (
	// InstallUnknown means the install method could not be determined.
	InstallUnknown InstallMethod = iota
	// InstallHomebrew means the binary lives in a Homebrew cellar.
	InstallHomebrew
	// InstallScript means an install script or go install.
	InstallScript
)

func (m InstallMethod) String() string {
	switch m {
	case InstallHomebrew:
		return "homebrew"
	case InstallScript:
		return "script"
	default:
		return "unknown"
	}
}

// DetectInstallMethod inspects the resolved executable path.
func DetectInstallMethod() InstallMethod {
	exe, err := os.Executable()
	if err != nil {
		return InstallUnknown
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return InstallUnknown
	}
	return installMethodFor(exe)
}

func installMethodFor(exe string) InstallMethod {
	if strings.Contains(exe, "/Cellar/") ||
		strings.HasPrefix(exe, "/opt/homebrew/") ||
		strings.HasPrefix(exe, "/usr/local/Homebrew/") ||
		strings.Contains(exe, "linuxbrew") {
		return InstallHomebrew
	}
	return InstallScript
}

// Checker checks for and applies updates for one running version.
type Checker struct {
	current  string
	cacheDir string
	logger   *zap.Logger
}

// NewChecker returns a Checker for currentVersion. The check cache lives in
// the user config directory.
func NewChecker(currentVersion string, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{
		current:  strings.TrimPrefix(currentVersion, "v"),
		cacheDir: defaultCacheDir(),
		logger:   logger,
	}
}

func defaultCacheDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "investors")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "investors")
}

func (c *Checker) isDev() bool {
	return c.current == "" || c.current == "dev"
}

func (c *Checker) latest(ctx context.Context) (*selfupdate.Updater, *selfupdate.Release, bool, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to create GitHub source: %w", err)
	}
	updater, err := selfupdate.NewUpdater(selfupdate.Config{Source: source})
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to create updater: %w", err)
	}
	rel, found, err := updater.DetectLatest(ctx, selfupdate.NewRepositorySlug(repoOwner, repoName))
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to detect latest version: %w", err)
	}
	return updater, rel, found, nil
}

// Check returns the latest release and whether it is newer than the running
// version. Dev builds never check.
func (c *Checker) Check(ctx context.Context) (*Release, bool, error) {
	if c.isDev() {
		return nil, false, nil
	}
	_, rel, found, err := c.latest(ctx)
	if err != nil || !found {
		return nil, false, err
	}
	c.logger.Debug("latest release", zap.String("version", rel.Version()))
	return &Release{Version: rel.Version(), URL: rel.URL}, rel.GreaterThan(c.current), nil
}

// Apply downloads the latest release over the running executable. Homebrew
// installs must upgrade through brew.
func (c *Checker) Apply(ctx context.Context) (*Release, error) {
	if DetectInstallMethod() == InstallHomebrew {
		return nil, fmt.Errorf("investors was installed via Homebrew. Please run: brew upgrade %s", brewFormula)
	}
	if c.isDev() {
		return nil, ErrDevBuild
	}

	updater, rel, found, err := c.latest(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("no releases found")
	}
	if !rel.GreaterThan(c.current) {
		return nil, fmt.Errorf("already at latest version (%s)", c.current)
	}

	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}
	if err := updater.UpdateTo(ctx, rel, exe); err != nil {
		return nil, fmt.Errorf("failed to update: %w", err)
	}
	c.logger.Info("updated", zap.String("from", c.current), zap.String("to", rel.Version()))
	return &Release{Version: rel.Version(), URL: rel.URL}, nil
}

// checkCache stores the last update check result.
type checkCache struct {
	LastCheck       time.Time `yaml:"last_check"`
	LatestVersion   string    `yaml:"latest_version,omitempty"`
	UpdateAvailable bool      `yaml:"update_available"`
}

func (c *Checker) cachePath() string {
	if c.cacheDir == "" {
		return ""
	}
	return filepath.Join(c.cacheDir, "update-check.yaml")
}

func (c *Checker) loadCache() *checkCache {
	path := c.cachePath()
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var cache checkCache
	if err := yaml.Unmarshal(data, &cache); err != nil {
		c.logger.Debug("discarding update cache", zap.Error(err))
		return nil
	}
	return &cache
}

func (c *Checker) saveCache(cache *checkCache) {
	path := c.cachePath()
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	data, err := yaml.Marshal(cache)
	if err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0o644)
}

// Notice checks at most once per checkInterval and returns a one-line
// notice when a newer release exists, or "".
func (c *Checker) Notice(ctx context.Context) string {
	if c.isDev() {
		return ""
	}

	if cache := c.loadCache(); cache != nil && time.Since(cache.LastCheck) < checkInterval {
		// The user may have upgraded since the cache was written.
		if cache.UpdateAvailable && isNewerVersion(cache.LatestVersion, c.current) {
			return formatUpdateNotice(c.current, cache.LatestVersion, DetectInstallMethod())
		}
		return ""
	}

	rel, newer, err := c.Check(ctx)
	cache := &checkCache{LastCheck: time.Now(), UpdateAvailable: newer && err == nil}
	if rel != nil {
		cache.LatestVersion = rel.Version
	}
	c.saveCache(cache)

	if err != nil {
		c.logger.Debug("update check failed", zap.Error(err))
		return ""
	}
	if !newer {
		return ""
	}
	return formatUpdateNotice(c.current, rel.Version, DetectInstallMethod())
}

// isNewerVersion reports whether a is newer than b, comparing
// major.minor.patch numerically.
func isNewerVersion(a, b string) bool {
	am, an, ap := parseVersion(a)
	bm, bn, bp := parseVersion(b)
	if am != bm {
		return am > bm
	}
	if an != bn {
		return an > bn
	}
	return ap > bp
}

func parseVersion(v string) (major, minor, patch int) {
	parts := strings.SplitN(strings.TrimPrefix(v, "v"), ".", 3)
	dst := []*int{&major, &minor, &patch}
	for i, p := range parts {
		_, _ = fmt.Sscanf(p, "%d", dst[i])
	}
	return major, minor, patch
}

// UpdateInstructions returns how to update for an install method.
func UpdateInstructions(method InstallMethod) string {
	if method == InstallHomebrew {
		return "Run: brew upgrade " + brewFormula
	}
	return "Run: investors upgrade"
}

func formatUpdateNotice(current, latest string, method InstallMethod) string {
	cmd := "investors upgrade"
	if method == InstallHomebrew {
		cmd = "brew upgrade " + brewFormula
	}
	return fmt.Sprintf("Update available: %s -> %s (run: %s)", current, latest, cmd)
}
