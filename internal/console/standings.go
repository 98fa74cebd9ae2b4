// Package console renders standings for terminal output.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abrezinsky/scoreboard/internal/scoring"
	"github.com/abrezinsky/scoreboard/internal/services"
)

// styles holds all the styles used in a standings table
type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	gold   lipgloss.Style
	silver lipgloss.Style
	bronze lipgloss.Style
	row    lipgloss.Style
	dim    lipgloss.Style
	warn   lipgloss.Style
}

func newStyles(colorize bool) styles {
	if !colorize {
		plain := lipgloss.NewStyle()
		return styles{title: plain, header: plain, gold: plain, silver: plain, bronze: plain, row: plain, dim: plain, warn: plain}
	}
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		header: lipgloss.NewStyle().Bold(true).Underline(true),
		gold:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		silver: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		bronze: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		row:    lipgloss.NewStyle(),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

func (s styles) forRank(rank int) lipgloss.Style {
	switch rank {
	case 1:
		return s.gold
	case 2:
		return s.silver
	case 3:
		return s.bronze
	default:
		return s.row
	}
}

// Renderer writes standings tables
type Renderer struct {
	w      io.Writer
	styles styles
}

// NewRenderer creates a Renderer. Colors are dropped when colorize is false.
func NewRenderer(w io.Writer, colorize bool) *Renderer {
	return &Renderer{w: w, styles: newStyles(colorize)}
}

type column struct {
	title string
	width int
	right bool
}

func (c column) render(style lipgloss.Style, value string) string {
	st := style.Width(c.width)
	if c.right {
		st = st.Align(lipgloss.Right)
	}
	return st.Render(value)
}

// Standings prints one leaderboard. Individual boards get a team column.
func (r *Renderer) Standings(title string, st *services.Standings) {
	individual := false
	for _, e := range st.Entries {
		if e.Team != "" {
			individual = true
			break
		}
	}

	nameWidth := len("Name")
	for _, e := range st.Entries {
		nameWidth = max(nameWidth, lipgloss.Width(e.DisplayName))
	}

	cols := []column{{title: "#", width: 4, right: true}, {title: "Key", width: 8}, {title: "Name", width: nameWidth + 2}}
	if individual {
		cols = append(cols, column{title: "Team", width: 6})
	}
	cols = append(cols,
		column{title: "Points", width: 8, right: true},
		column{title: "Results", width: 8, right: true},
	)

	heading := fmt.Sprintf("%s (%s, %s", title, st.Dimension, st.Scope)
	if st.Section != "" {
		heading += ", " + string(st.Section)
	}
	heading += ")"
	fmt.Fprintln(r.w, r.styles.title.Render(heading))

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.render(r.styles.header, c.title)
	}
	fmt.Fprintln(r.w, strings.Join(headers, " "))

	if len(st.Entries) == 0 {
		fmt.Fprintln(r.w, r.styles.dim.Render("  no scores yet"))
	}

	for _, e := range st.Entries {
		style := r.styles.forRank(e.Rank)
		values := []string{fmt.Sprintf("%d", e.Rank), e.Key, e.DisplayName}
		if individual {
			values = append(values, e.Team)
		}
		values = append(values, fmt.Sprintf("%d", e.DisplayPoints()), fmt.Sprintf("%d", e.Totals.ResultCount))

		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = c.render(style, values[i])
		}
		fmt.Fprintln(r.w, strings.Join(cells, " "))
	}

	r.diagnostics(st.Diagnostics)
}

func (r *Renderer) diagnostics(d scoring.Diagnostics) {
	if d.Clean() {
		return
	}
	var parts []string
	add := func(n int, what string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, what))
		}
	}
	add(d.UnresolvedProgrammes, "unresolved programmes")
	add(d.UnresolvedCandidates, "unresolved candidates")
	add(d.UnresolvedTeams, "unresolved teams")
	add(d.MalformedEntries, "malformed entries")
	add(d.UnknownGrades, "unknown grades")
	add(d.CachedPointsDrift, "stale cached points")
	fmt.Fprintln(r.w, r.styles.warn.Render("warning: "+strings.Join(parts, ", ")))
}
