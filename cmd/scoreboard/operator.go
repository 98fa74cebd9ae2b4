package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abrezinsky/scoreboard/internal/console"
	"github.com/abrezinsky/scoreboard/internal/logger"
	"github.com/abrezinsky/scoreboard/internal/services"
)

// standingsSource is the part of the standings service the operator console reads
type standingsSource interface {
	TeamStandings(ctx context.Context, q services.StandingsQuery) (*services.Standings, error)
}

// operator handles single-key commands typed into the serve terminal
type operator struct {
	out       io.Writer
	log       *logger.SlogLogger
	standings standingsSource
	publicURL func(ctx context.Context) (string, error)
	open      func(url string) error
	quit      context.CancelFunc
	colorize  bool
}

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	keyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
)

var levelCycle = []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}

func (o *operator) say(style lipgloss.Style, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if o.colorize {
		msg = style.Render(msg)
	}
	fmt.Fprintln(o.out, msg)
}

// listen reads keys from r until ctx is done or r fails
func (o *operator) listen(ctx context.Context, r io.Reader) {
	buf := make([]byte, 1)
	for ctx.Err() == nil {
		n, err := r.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		if o.handleKey(ctx, buf[0]) {
			return
		}
	}
}

// handleKey runs the command bound to key and reports whether the console
// should stop listening.
func (o *operator) handleKey(ctx context.Context, key byte) bool {
	switch strings.ToLower(string(key)) {
	case "s":
		o.printStandings(ctx, "admin")
	case "p":
		o.printStandings(ctx, "public")
	case "o":
		o.openPublicBoard(ctx)
	case "h":
		if o.log.IsHTTPLoggingEnabled() {
			o.log.DisableHTTPLogging()
			o.say(warnStyle, "HTTP logging disabled")
		} else {
			o.log.EnableHTTPLogging()
			o.say(okStyle, "HTTP logging enabled")
		}
	case "l":
		o.cycleLogLevel()
	case "?":
		o.printHelp()
	case "q", "\x03":
		o.say(warnStyle, "Shutting down server...")
		o.quit()
		return true
	}
	return false
}

func (o *operator) printStandings(ctx context.Context, scope string) {
	q, err := services.ParseStandingsQuery("", scope, "", true)
	if err != nil {
		o.say(errStyle, "standings: %v", err)
		return
	}
	st, err := o.standings.TeamStandings(ctx, q)
	if err != nil {
		o.say(errStyle, "standings: %v", err)
		return
	}
	console.NewRenderer(o.out, o.colorize).Standings("Team standings", st)
}

func (o *operator) openPublicBoard(ctx context.Context) {
	base, err := o.publicURL(ctx)
	if err != nil || base == "" {
		o.say(errStyle, "public url is not configured")
		return
	}
	target := base + "/api/standings"
	o.say(okStyle, "Opening %s", target)
	if err := o.open(target); err != nil {
		o.say(errStyle, "Error opening browser: %v", err)
	}
}

// cycleLogLevel steps debug -> info -> warn -> error -> debug
func (o *operator) cycleLogLevel() {
	current := o.log.GetLevel()
	next := levelCycle[0]
	for i, l := range levelCycle {
		if l == current {
			next = levelCycle[(i+1)%len(levelCycle)]
			break
		}
	}
	o.log.SetLevel(next)
	o.say(okStyle, "Log level: %s", strings.ToLower(next.String()))
}

func (o *operator) printHelp() {
	keys := [][2]string{
		{"s", "Print admin team standings"},
		{"p", "Print public team standings"},
		{"o", "Open the public standings in a browser"},
		{"h", "Toggle HTTP request logging"},
		{"l", "Cycle log level (debug, info, warn, error)"},
		{"q", "Quit server"},
		{"?", "Show this help"},
	}
	fmt.Fprintln(o.out, "Keyboard shortcuts:")
	for _, k := range keys {
		key := k[0]
		if o.colorize {
			key = keyStyle.Render(key)
		}
		fmt.Fprintf(o.out, "  %s  %s\n", key, k[1])
	}
}
