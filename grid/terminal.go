package grid

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/knix24/sleeper-pixel-performance/model"
)

const (
	maxNameLength = 15
	noDataSymbol  = "·"

	EmptyRosterMessage = "No performance data found for this roster."
	EmptyLeagueMessage = "No performance data found for this league."
)

// Denser blocks mean a better finish at the position.
var tierSymbols = map[model.Tier]string{
	model.TIER_ELITE:   "█",
	model.TIER_GREAT:   "▓",
	model.TIER_GOOD:    "▒",
	model.TIER_AVERAGE: "░",
}

var tierTermColors = map[model.Tier]lipgloss.Color{
	model.TIER_ELITE:   lipgloss.Color("10"),
	model.TIER_GREAT:   lipgloss.Color("2"),
	model.TIER_GOOD:    lipgloss.Color("157"),
	model.TIER_AVERAGE: lipgloss.Color("8"),
}

type termStyles struct {
	re      *lipgloss.Renderer
	tiers   map[model.Tier]lipgloss.Style
	dim     lipgloss.Style
	title   lipgloss.Style
	heading lipgloss.Style
	name    lipgloss.Style
	warn    lipgloss.Style
}

// Styles are tied to the writer so color is dropped when it isn't a terminal.
func newTermStyles(w io.Writer) *termStyles {
	re := lipgloss.NewRenderer(w)
	s := &termStyles{
		re:      re,
		tiers:   make(map[model.Tier]lipgloss.Style, len(model.Tiers)),
		dim:     re.NewStyle().Faint(true),
		title:   re.NewStyle().Bold(true),
		heading: re.NewStyle().Bold(true).Underline(true),
		name:    re.NewStyle().Foreground(lipgloss.Color("6")),
		warn:    re.NewStyle().Foreground(lipgloss.Color("3")),
	}
	for _, t := range model.Tiers {
		s.tiers[t] = re.NewStyle().Foreground(tierTermColors[t])
	}
	s.tiers[model.TIER_ELITE] = s.tiers[model.TIER_ELITE].Bold(true)
	return s
}

// RenderTerminal draws the grid for a single team.
func RenderTerminal(w io.Writer, r *model.Report, opts Options) error {
	s := newTermStyles(w)

	rows := PrepareRows(r.Results, opts.Positions, r.RosterWeeks, r.MaxWeek)
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, s.warn.Render(EmptyRosterMessage))
		return err
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.title.Render(fmt.Sprintf("%s - %s Season Performance", r.TeamName, r.Season)))
	b.WriteString("\n")
	b.WriteString(s.table(rows, r.MaxWeek, opts.ShowPoints))
	b.WriteString("\n\n")
	b.WriteString(s.legend())
	b.WriteString("\n\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderCompare draws one grid per team, in the order the teams are given.
func RenderCompare(w io.Writer, cr *model.CompareReport, opts Options) error {
	s := newTermStyles(w)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.title.Render(fmt.Sprintf("%s - %s Season Comparison", cr.LeagueName, cr.Season)))
	b.WriteString("\n")

	drawn := 0
	for _, team := range cr.Teams {
		b.WriteString("\n")
		b.WriteString(s.heading.Render(team.TeamName))
		b.WriteString("\n")

		rows := PrepareRows(team.Results, opts.Positions, team.RosterWeeks, cr.MaxWeek)
		if len(rows) == 0 {
			b.WriteString(s.dim.Render(EmptyRosterMessage))
			b.WriteString("\n")
			continue
		}
		b.WriteString(s.table(rows, cr.MaxWeek, opts.ShowPoints))
		b.WriteString("\n")
		drawn++
	}

	if drawn == 0 {
		_, err := fmt.Fprintln(w, s.warn.Render(EmptyLeagueMessage))
		return err
	}

	b.WriteString("\n")
	b.WriteString(s.legend())
	b.WriteString("\n\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func (s *termStyles) table(rows []Row, maxWeek int, showPoints bool) string {
	colWidth := 2
	if showPoints {
		colWidth = 5
	}

	headers := make([]string, 0, maxWeek+1)
	headers = append(headers, "Player")
	for week := 1; week <= maxWeek; week++ {
		headers = append(headers, strconv.Itoa(week))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.dim).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderRow(true).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			st := s.re.NewStyle()
			if row == 0 {
				st = st.Bold(true)
			}
			if col == 0 {
				return st.PaddingRight(1)
			}
			return st.Width(colWidth).Align(lipgloss.Center)
		})

	for _, row := range rows {
		cells := make([]string, 0, len(row.Cells)+1)
		cells = append(cells, s.dim.Render(string(row.Position))+" "+s.name.Render(truncateName(row.Name)))
		for _, c := range row.Cells {
			cells = append(cells, s.cell(c, showPoints))
		}
		t.Row(cells...)
	}

	return t.Render()
}

func (s *termStyles) cell(c Cell, showPoints bool) string {
	switch c.State {
	case CELL_SCORED:
		st := s.tiers[c.Result.Tier]
		if showPoints {
			return st.Render(fmt.Sprintf("%4.0f", c.Result.Points))
		}
		return st.Render(tierSymbols[c.Result.Tier])
	case CELL_NO_DATA:
		return s.dim.Render(noDataSymbol)
	default:
		return " "
	}
}

func (s *termStyles) legend() string {
	var b strings.Builder
	b.WriteString("Legend: ")
	for _, t := range model.Tiers {
		b.WriteString(s.tiers[t].Render(tierSymbols[t]))
		b.WriteString(" " + t.Label() + "  ")
	}
	b.WriteString(s.dim.Render(noDataSymbol))
	b.WriteString(" No data")
	return b.String()
}

func truncateName(name string) string {
	r := []rune(name)
	if len(r) <= maxNameLength {
		return name
	}
	return string(r[:maxNameLength])
}
