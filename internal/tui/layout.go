package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pengelbrecht/investors/internal/investor"
	"github.com/pengelbrecht/investors/internal/scroll"
	"github.com/pengelbrecht/investors/internal/view"
)

// Header layout, in logical pixels from the top of the header. The title
// bar is pinned; everything below it moves with HeaderTranslateY.
const (
	searchY   = 80
	categoryY = 140

	// categoryBarMinOpacity hides the category bar once it has faded.
	categoryBarMinOpacity = 0.05

	maxCardWidth = 72
	title        = "Investisseurs"
)

// Color palette
var (
	headerBg    = lipgloss.Color("#2C3E50")
	headerFg    = lipgloss.Color("#FFFFFF")
	mutedColor  = lipgloss.Color("#7F8C8D")
	subtleColor = lipgloss.Color("#95A5A6")
	borderColor = lipgloss.Color("#ECF0F1")
	accentColor = lipgloss.Color("#27AE60")
	starColor   = lipgloss.Color("#F1C40F")
	errorColor  = lipgloss.Color("#E74C3C")
)

var (
	headerLineStyle = lipgloss.NewStyle().
			Background(headerBg)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Bold(true)

	expertiseStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	statValueStyle = lipgloss.NewStyle().
			Bold(true)

	statLabelStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	tagStyle = lipgloss.NewStyle().
			Foreground(headerBg).
			Background(borderColor).
			Padding(0, 1)

	verifiedStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	ratingStyle = lipgloss.NewStyle().
			Foreground(starColor)

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)

// blend fades fg toward bg; opacity 1 gives fg and 0 gives bg.
func blend(fg, bg lipgloss.Color, opacity float64) lipgloss.Color {
	f, err := colorful.Hex(string(fg))
	if err != nil {
		return fg
	}
	b, err := colorful.Hex(string(bg))
	if err != nil {
		return fg
	}
	opacity = math.Max(0, math.Min(1, opacity))
	return lipgloss.Color(b.BlendLab(f, opacity).Clamped().Hex())
}

// spaced inserts gaps spaces between the letters of s.
func spaced(s string, gaps int) string {
	if gaps <= 0 {
		return s
	}
	sep := strings.Repeat(" ", gaps)
	return strings.Join(strings.Split(s, ""), sep)
}

// titleGaps maps TitleScale to letter spacing: the full-size title is
// tracked out, the collapsed one is tight.
func titleGaps(scale float64) int {
	if scale >= 0.95 {
		return 1
	}
	return 0
}

// headerLayout positions the header rows for one set of outputs.
type headerLayout struct {
	rows        int
	titleRows   int
	searchRow   int
	categoryRow int
}

func (m Model) layoutHeader(out scroll.Outputs) headerLayout {
	titleRows := m.settings.rows(m.interp.Bounds().TitleBarHeight)
	if titleRows < 2 {
		titleRows = 2
	}
	rows := m.settings.rows(out.HeaderHeight)
	if rows < titleRows+1 {
		rows = titleRows + 1
	}
	return headerLayout{
		rows:        rows,
		titleRows:   titleRows,
		searchRow:   m.settings.rows(searchY + out.HeaderTranslateY + out.SearchBarTranslateY),
		categoryRow: m.settings.rows(categoryY + out.HeaderTranslateY + out.CategoryBarTranslateY),
	}
}

// visible reports whether a body row lands inside the header, below the
// title bar and above the closing rule.
func (l headerLayout) visible(row int) bool {
	return row >= l.titleRows && row < l.rows-1
}

// renderHeader renders the collapsing header for out as exactly
// layout.rows lines.
func (m Model) renderHeader(out scroll.Outputs) string {
	l := m.layoutHeader(out)
	lines := make([]string, l.rows)

	fg := blend(headerFg, headerBg, out.HeaderOpacity)
	lines[0] = lipgloss.NewStyle().Bold(true).Foreground(fg).
		Render(spaced(title, titleGaps(out.TitleScale)))
	lines[1] = lipgloss.NewStyle().Foreground(blend(subtleColor, headerBg, out.HeaderOpacity)).
		Render(m.summary())

	if l.visible(l.searchRow) {
		lines[l.searchRow] = m.renderSearch(out.HeaderOpacity)
	}
	if out.CategoryBarOpacity >= categoryBarMinOpacity && l.visible(l.categoryRow) && l.categoryRow != l.searchRow {
		lines[l.categoryRow] = m.renderCategories(out.CategoryBarOpacity)
	}
	lines[l.rows-1] = lipgloss.NewStyle().Foreground(blend(mutedColor, headerBg, out.HeaderOpacity)).
		Render(strings.Repeat("─", max(0, m.width-2)))

	style := headerLineStyle.Width(m.width).MaxWidth(m.width).Padding(0, 1)
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}

// summary is the subtitle under the title: result count and sort order.
func (m Model) summary() string {
	c := m.pipeline.Criteria()
	return fmt.Sprintf("%d / %d · tri : %s", m.pipeline.Len(), m.pipeline.CollectionLen(), sortLabel(c.Sort))
}

func (m Model) renderSearch(opacity float64) string {
	in := m.search
	fg := blend(headerFg, headerBg, opacity)
	in.PromptStyle = lipgloss.NewStyle().Foreground(fg).Background(headerBg)
	in.TextStyle = lipgloss.NewStyle().Foreground(fg).Background(headerBg)
	in.PlaceholderStyle = lipgloss.NewStyle().Foreground(blend(subtleColor, headerBg, opacity)).Background(headerBg)
	in.Width = max(10, m.width-8)
	return in.View()
}

func (m Model) renderCategories(opacity float64) string {
	active := m.pipeline.Criteria().Category
	fg := blend(headerFg, headerBg, opacity)
	activeBg := blend(headerFg, headerBg, 0.2*opacity)

	parts := make([]string, 0, len(m.categories))
	for _, c := range m.categories {
		s := lipgloss.NewStyle().Foreground(fg).Background(headerBg).Padding(0, 1)
		if c == active {
			s = s.Bold(true).Background(activeBg)
		}
		parts = append(parts, s.Render(string(c)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// cardWidth is the width of a card at scale 1.
func (m Model) cardWidth() int {
	return max(20, min(maxCardWidth, m.width-4))
}

// renderCard renders inv as exactly cardRows lines, shrunk by scale and
// centred in the full card width.
func (m Model) renderCard(inv *investor.Investor, scale float64) []string {
	full := m.cardWidth()
	width := int(math.Round(float64(full) * scale))
	inner := max(10, width-4)

	name := nameStyle.Render(inv.Name)
	if inv.Verified {
		name += " " + verifiedStyle.Render("✓")
	}
	rating := ratingStyle.Render(fmt.Sprintf("★ %.1f", inv.Rating))
	gap := max(1, inner-lipgloss.Width(name)-lipgloss.Width(rating))
	top := name + strings.Repeat(" ", gap) + rating

	stats := strings.Join([]string{
		stat(fmt.Sprint(inv.Investments), "Investissements"),
		stat(inv.PortfolioLabel(), "Portfolio"),
		stat(fmt.Sprint(inv.SuccessfulExits), "Exits"),
	}, "   ")

	tags := make([]string, 0, len(inv.Sectors))
	for _, s := range inv.Sectors {
		tags = append(tags, tagStyle.Render(s))
	}

	where := inv.Location
	if inv.TicketSize != "" {
		if where != "" {
			where += " · "
		}
		where += "Ticket " + inv.TicketSize
	}

	body := []string{
		top,
		expertiseStyle.Render(string(inv.Expertise)),
		"",
		stats,
		strings.Join(tags, " "),
		expertiseStyle.Render(where),
	}

	cardRows := m.cardRows()
	// Border takes two rows.
	for len(body) < cardRows-2 {
		body = append(body, "")
	}
	body = body[:max(0, cardRows-2)]

	card := cardStyle.Width(inner + 2).MaxWidth(width).Render(strings.Join(body, "\n"))
	margin := strings.Repeat(" ", max(0, (full-width)/2)+1)
	lines := strings.Split(card, "\n")
	for i := range lines {
		lines[i] = margin + lines[i]
	}
	for len(lines) < cardRows {
		lines = append(lines, "")
	}
	return lines[:cardRows]
}

func stat(value, label string) string {
	return statValueStyle.Render(value) + " " + statLabelStyle.Render(label)
}

func (m Model) cardRows() int {
	return max(3, m.settings.rows(m.settings.CardHeight))
}

// renderCards renders the visible slice of the card list in exactly rows
// lines. A negative offset (overscroll) pushes the list down.
func (m Model) renderCards(rows int) string {
	if rows <= 0 {
		return ""
	}
	items := m.pipeline.CurrentView()
	if len(items) == 0 {
		msg := "Aucun investisseur ne correspond à la recherche."
		if m.loading {
			msg = "Chargement…"
		}
		lines := make([]string, rows)
		lines[0] = " " + expertiseStyle.Render(msg)
		return strings.Join(lines, "\n")
	}

	offset := m.motion.offset
	skip := m.settings.rows(offset)
	cardRows := m.cardRows()

	lines := make([]string, 0, rows)
	for pad := -skip; pad > 0 && len(lines) < rows; pad-- {
		lines = append(lines, "")
	}
	first := max(0, skip/cardRows)
	for i := first; i < len(items) && len(lines) < rows; i++ {
		card := m.renderCard(items[i], scroll.CardScale(offset, i, m.settings.CardHeight))
		from := 0
		if i == first && skip > 0 {
			from = skip - first*cardRows
		}
		for _, line := range card[from:] {
			if len(lines) == rows {
				break
			}
			lines = append(lines, line)
		}
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderStatus renders the status line: load errors win over progress.
func (m Model) renderStatus() string {
	var left string
	switch {
	case m.err != nil:
		left = errorStyle.Render("⚠ " + m.err.Error())
	case m.loading:
		left = "Chargement…"
	default:
		left = fmt.Sprintf("%d investisseurs · %s", m.pipeline.Len(), categoryLabel(m.pipeline.Criteria()))
	}
	right := fmt.Sprintf("%3.0f%%", 100*m.interp.Progress(m.motion.offset))
	gap := max(1, m.width-2-lipgloss.Width(left)-lipgloss.Width(right))
	return statusStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func categoryLabel(c view.Criteria) string {
	if c.Category.IsAll() {
		return "toutes catégories"
	}
	return string(c.Category)
}

// renderFooter renders the help line.
func (m Model) renderFooter() string {
	m.help.ShowAll = m.showHelp
	return lipgloss.NewStyle().Padding(0, 1).Render(m.help.View(m.keys))
}
