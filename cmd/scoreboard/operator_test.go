package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrezinsky/scoreboard/internal/logger"
	"github.com/abrezinsky/scoreboard/internal/scoring"
	"github.com/abrezinsky/scoreboard/internal/services"
)

type fakeStandings struct {
	lastScope string
	err       error
}

func (f *fakeStandings) TeamStandings(ctx context.Context, q services.StandingsQuery) (*services.Standings, error) {
	f.lastScope = q.ScopeName
	if f.err != nil {
		return nil, f.err
	}
	return &services.Standings{
		Dimension: q.Dimension,
		Scope:     q.ScopeName,
		Entries: []scoring.RankedEntry{
			{Rank: 1, Key: "SMD", DisplayName: "Samudra", Points: 17},
			{Rank: 2, Key: "AQS", DisplayName: "Aquarius", Points: 8},
		},
	}, nil
}

type operatorHarness struct {
	op        *operator
	out       *bytes.Buffer
	standings *fakeStandings
	opened    []string
	publicURL string
	quitCalls int
}

func newOperatorHarness() *operatorHarness {
	h := &operatorHarness{out: &bytes.Buffer{}, standings: &fakeStandings{}}
	h.op = &operator{
		out:       h.out,
		log:       logger.NewWithOptions(logger.Options{Writer: io.Discard}),
		standings: h.standings,
		publicURL: func(context.Context) (string, error) { return h.publicURL, nil },
		open: func(url string) error {
			h.opened = append(h.opened, url)
			return nil
		},
		quit: func() { h.quitCalls++ },
	}
	return h
}

func TestOperator_PrintStandings(t *testing.T) {
	h := newOperatorHarness()
	ctx := context.Background()

	assert.False(t, h.op.handleKey(ctx, 's'))
	assert.Equal(t, "admin", h.standings.lastScope)
	assert.Contains(t, h.out.String(), "Team standings (total, admin)")
	assert.Less(t, strings.Index(h.out.String(), "Samudra"), strings.Index(h.out.String(), "Aquarius"))

	h.out.Reset()
	h.op.handleKey(ctx, 'P')
	assert.Equal(t, "public", h.standings.lastScope)

	h.out.Reset()
	h.standings.err = errors.New("database is locked")
	h.op.handleKey(ctx, 's')
	assert.Contains(t, h.out.String(), "database is locked")
}

func TestOperator_OpenPublicBoard(t *testing.T) {
	h := newOperatorHarness()
	ctx := context.Background()

	h.op.handleKey(ctx, 'o')
	assert.Empty(t, h.opened)
	assert.Contains(t, h.out.String(), "not configured")

	h.publicURL = "http://192.168.1.20:8081"
	h.op.handleKey(ctx, 'o')
	assert.Equal(t, []string{"http://192.168.1.20:8081/api/standings"}, h.opened)
}

func TestOperator_ToggleHTTPLogging(t *testing.T) {
	h := newOperatorHarness()
	ctx := context.Background()

	h.op.handleKey(ctx, 'h')
	assert.True(t, h.op.log.IsHTTPLoggingEnabled())
	h.op.handleKey(ctx, 'h')
	assert.False(t, h.op.log.IsHTTPLoggingEnabled())
}

func TestOperator_CycleLogLevel(t *testing.T) {
	h := newOperatorHarness()
	ctx := context.Background()

	want := []slog.Level{slog.LevelWarn, slog.LevelError, slog.LevelDebug, slog.LevelInfo}
	for _, level := range want {
		h.op.handleKey(ctx, 'l')
		assert.Equal(t, level, h.op.log.GetLevel())
	}
	assert.Contains(t, h.out.String(), "Log level: debug")
}

func TestOperator_HelpAndUnknownKeys(t *testing.T) {
	h := newOperatorHarness()
	ctx := context.Background()

	assert.False(t, h.op.handleKey(ctx, '?'))
	assert.Contains(t, h.out.String(), "Keyboard shortcuts:")

	h.out.Reset()
	assert.False(t, h.op.handleKey(ctx, 'z'))
	assert.Empty(t, h.out.String())
}

func TestOperator_ListenStopsOnQuit(t *testing.T) {
	h := newOperatorHarness()

	h.op.listen(context.Background(), strings.NewReader("hq?"))
	require.Equal(t, 1, h.quitCalls)
	assert.True(t, h.op.log.IsHTTPLoggingEnabled())
	assert.NotContains(t, h.out.String(), "Keyboard shortcuts:")
}

func TestOperator_ListenStopsOnEOF(t *testing.T) {
	h := newOperatorHarness()

	h.op.listen(context.Background(), strings.NewReader("h"))
	assert.Zero(t, h.quitCalls)
}

func TestOperator_CtrlCQuits(t *testing.T) {
	h := newOperatorHarness()
	assert.True(t, h.op.handleKey(context.Background(), 0x03))
	assert.Equal(t, 1, h.quitCalls)
}
