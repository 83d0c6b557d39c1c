// Package tui implements the interactive investor browser: a collapsing
// header driven by the scroll interpolator above a card list driven by the
// view pipeline.
package tui

import (
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/pengelbrecht/investors/internal/investor"
	"github.com/pengelbrecht/investors/internal/scroll"
	"github.com/pengelbrecht/investors/internal/view"
)

func init() {
	// Force TrueColor for terminals that misreport capabilities (e.g., TERM=screen in tmux)
	os.Setenv("COLORTERM", "truecolor")
}

// LoadFunc produces a fresh collection snapshot.
type LoadFunc func() ([]*investor.Investor, error)

// Message types for collection updates from the loader or the file watcher.
type (
	// CollectionMsg replaces the collection.
	CollectionMsg struct {
		Investors []*investor.Investor
	}

	// LoadErrorMsg reports a failed load. The last good collection stays.
	LoadErrorMsg struct {
		Err error
	}
)

// Model is the main Bubble Tea model for the investor browser.
type Model struct {
	pipeline *view.Pipeline
	interp   *scroll.Interpolator
	settings Settings
	load     LoadFunc
	logger   *zap.Logger

	search     textinput.Model
	categories []investor.Category
	motion     motion

	keys     keyMap
	help     help.Model
	showHelp bool

	width    int
	height   int
	loading  bool
	err      error
	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithSettings sets geometry and motion. Non-positive fields keep their
// defaults.
func WithSettings(s Settings) Option {
	return func(m *Model) {
		d := DefaultSettings()
		if s.PxPerRow <= 0 {
			s.PxPerRow = d.PxPerRow
		}
		if s.Step <= 0 {
			s.Step = d.Step
		}
		if s.CardHeight <= 0 {
			s.CardHeight = d.CardHeight
		}
		if s.Overscroll < 0 {
			s.Overscroll = d.Overscroll
		}
		if s.FrameInterval <= 0 {
			s.FrameInterval = d.FrameInterval
		}
		if s.SpringFrequency <= 0 {
			s.SpringFrequency = d.SpringFrequency
		}
		if s.SpringDamping <= 0 {
			s.SpringDamping = d.SpringDamping
		}
		m.settings = s
	}
}

// WithLoader sets the function run by Init and on refresh.
func WithLoader(fn LoadFunc) Option {
	return func(m *Model) {
		m.load = fn
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates the browser model around a pipeline and an interpolator. The
// model becomes their single owner.
func New(p *view.Pipeline, interp *scroll.Interpolator, opts ...Option) Model {
	h := help.New()
	h.Styles.ShortKey = footerStyle.Bold(true)
	h.Styles.ShortDesc = footerStyle
	h.Styles.ShortSeparator = footerStyle
	h.Styles.FullKey = footerStyle.Bold(true)
	h.Styles.FullDesc = footerStyle
	h.Styles.FullSeparator = footerStyle

	in := textinput.New()
	in.Prompt = "⌕ "
	in.Placeholder = "Rechercher un investisseur..."
	in.SetValue(p.Criteria().Search)

	m := Model{
		pipeline:   p,
		interp:     interp,
		settings:   DefaultSettings(),
		logger:     zap.NewNop(),
		search:     in,
		categories: investor.Categories,
		keys:       defaultKeyMap,
		help:       h,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.motion = newMotion(m.settings)
	m.loading = m.load != nil
	return m
}

// Init returns the initial command for the model.
func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m Model) loadCmd() tea.Cmd {
	if m.load == nil {
		return nil
	}
	load := m.load
	return func() tea.Msg {
		items, err := load()
		if err != nil {
			return LoadErrorMsg{Err: err}
		}
		return CollectionMsg{Investors: items}
	}
}

// Update handles incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case CollectionMsg:
		m.loading = false
		m.err = nil
		m.pipeline.SetCollection(msg.Investors)
		m.logger.Info("collection loaded",
			zap.Int("count", len(msg.Investors)),
			zap.Int("visible", m.pipeline.Len()))
		cmd := m.motion.aim(m.clamp(m.motion.target))
		return m, cmd

	case LoadErrorMsg:
		m.loading = false
		m.err = msg.Err
		m.logger.Warn("load failed", zap.Error(msg.Err))
		return m, nil

	case frameMsg:
		cmd := m.motion.step()
		return m, cmd

	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Blur) {
		m.search.Blur()
		return m, nil
	}
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.pipeline.Criteria().Search {
		// Search never fails validation.
		_ = m.pipeline.SetCriteria(view.Update{}.WithSearch(m.search.Value()))
		batch := tea.Batch(cmd, m.motion.aim(m.clamp(m.motion.target)))
		return m, batch
	}
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		// Expand the header so the search box is on screen.
		cmd := tea.Batch(m.search.Focus(), m.motion.aim(0))
		return m, cmd

	case key.Matches(msg, m.keys.NextCategory):
		return m.setCategory(cycleCategory(m.categories, m.pipeline.Criteria().Category, 1))

	case key.Matches(msg, m.keys.PrevCategory):
		return m.setCategory(cycleCategory(m.categories, m.pipeline.Criteria().Category, -1))

	case key.Matches(msg, m.keys.Sort):
		next := nextSort(m.pipeline.Criteria().Sort)
		if err := m.pipeline.SetCriteria(view.Update{}.WithSort(next)); err != nil {
			m.err = err
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.load == nil {
			return m, nil
		}
		m.loading = true
		return m, m.loadCmd()

	case key.Matches(msg, m.keys.Down):
		cmd := m.motion.aim(m.clamp(m.motion.target + m.settings.Step))
		return m, cmd

	case key.Matches(msg, m.keys.Up):
		cmd := m.motion.aim(m.clamp(m.motion.target - m.settings.Step))
		return m, cmd

	case key.Matches(msg, m.keys.PageDown):
		cmd := m.motion.aim(m.clamp(m.motion.target + m.pagePx()))
		return m, cmd

	case key.Matches(msg, m.keys.PageUp):
		cmd := m.motion.aim(m.clamp(math.Max(0, m.motion.target-m.pagePx())))
		return m, cmd

	case key.Matches(msg, m.keys.Top):
		cmd := m.motion.aim(0)
		return m, cmd

	case key.Matches(msg, m.keys.Bottom):
		cmd := m.motion.aim(m.maxOffset())
		return m, cmd

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}
	return m, nil
}

func (m Model) setCategory(c investor.Category) (tea.Model, tea.Cmd) {
	if err := m.pipeline.SetCriteria(view.Update{}.WithCategory(c)); err != nil {
		m.err = err
		return m, nil
	}
	cmd := m.motion.aim(m.clamp(m.motion.target))
	return m, cmd
}

// maxOffset lets the last card scroll to the top of the list.
func (m Model) maxOffset() float64 {
	n := m.pipeline.Len()
	if n <= 1 {
		return 0
	}
	return float64(n-1) * m.settings.CardHeight
}

// clamp keeps a target offset within [-overscroll, maxOffset].
func (m Model) clamp(offset float64) float64 {
	return math.Max(-m.settings.Overscroll, math.Min(m.maxOffset(), offset))
}

// pagePx is one screen of list, in logical pixels.
func (m Model) pagePx() float64 {
	rows := m.height - m.settings.rows(m.interp.Bounds().MinHeaderHeight) - 2
	return math.Max(m.settings.Step, float64(rows)*m.settings.PxPerRow)
}

// Offset returns the displayed scroll offset.
func (m Model) Offset() float64 {
	return m.motion.offset
}

// Target returns the scroll offset the display is easing toward.
func (m Model) Target() float64 {
	return m.motion.target
}

// View renders the current model state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading...\n"
	}

	out := m.interp.Update(m.motion.offset)
	header := m.renderHeader(out)
	status := m.renderStatus()
	footer := m.renderFooter()

	listRows := m.height - lipgloss.Height(header) - lipgloss.Height(status) - lipgloss.Height(footer)
	parts := []string{header}
	if listRows > 0 {
		parts = append(parts, m.renderCards(listRows))
	}
	parts = append(parts, status, footer)
	return strings.Join(parts, "\n")
}
