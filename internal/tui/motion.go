package tui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
)

// Settings holds the browser's geometry and motion tuning. Distances are in
// logical pixels, the unit the interpolator works in.
type Settings struct {
	PxPerRow        float64
	Step            float64
	CardHeight      float64
	Overscroll      float64
	FrameInterval   time.Duration
	SpringFrequency float64
	SpringDamping   float64
}

// DefaultSettings returns the settings used when none are given.
func DefaultSettings() Settings {
	return Settings{
		PxPerRow:        20,
		Step:            60,
		CardHeight:      180,
		Overscroll:      40,
		FrameInterval:   16 * time.Millisecond,
		SpringFrequency: 6.0,
		SpringDamping:   0.8,
	}
}

// rows converts logical pixels to terminal rows.
func (s Settings) rows(px float64) int {
	return int(math.Round(px / s.PxPerRow))
}

// settle thresholds, in pixels and pixels per second.
const (
	settleDistance = 0.5
	settleVelocity = 0.5
)

// frameMsg advances the scroll animation by one frame.
type frameMsg time.Time

// motion eases the displayed offset toward a target offset.
type motion struct {
	spring   harmonica.Spring
	interval time.Duration

	target   float64
	offset   float64
	velocity float64
	// ticking is set while a frame tick is in flight, so at most one is
	// ever scheduled.
	ticking bool
}

func newMotion(s Settings) motion {
	fps := int(time.Second / s.FrameInterval)
	if fps < 1 {
		fps = 1
	}
	return motion{
		spring:   harmonica.NewSpring(harmonica.FPS(fps), s.SpringFrequency, s.SpringDamping),
		interval: s.FrameInterval,
	}
}

// settled reports whether the displayed offset has reached the target.
func (m *motion) settled() bool {
	return math.Abs(m.offset-m.target) < settleDistance && math.Abs(m.velocity) < settleVelocity
}

// aim sets a new target and returns the tick command if one is needed.
func (m *motion) aim(target float64) tea.Cmd {
	m.target = target
	return m.schedule()
}

func (m *motion) schedule() tea.Cmd {
	if m.ticking || m.settled() {
		return nil
	}
	m.ticking = true
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// step advances one frame. A target in the overscroll zone springs back to
// rest once reached.
func (m *motion) step() tea.Cmd {
	m.ticking = false
	m.offset, m.velocity = m.spring.Update(m.offset, m.velocity, m.target)
	if m.settled() {
		m.offset = m.target
		m.velocity = 0
		if m.target < 0 {
			m.target = 0
		}
	}
	return m.schedule()
}
