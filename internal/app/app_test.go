package app

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/abrezinsky/scoreboard/internal/auth"
	"github.com/abrezinsky/scoreboard/internal/config"
	"github.com/abrezinsky/scoreboard/internal/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: 0},
		DB:        config.DBConfig{Path: ":memory:"},
		Admin:     config.AdminConfig{Password: "test-password"},
		Standings: config.StandingsConfig{HideZero: true},
	}
}

func createTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	app, err := New(logger.New(), cfg, auth.New(cfg.Admin.Password))
	if err != nil {
		t.Fatalf("failed to create test app: %v", err)
	}
	t.Cleanup(func() { app.Close() })
	return app
}

func TestNew_InitializesApp(t *testing.T) {
	app := createTestApp(t, testConfig())

	if app.handlers == nil {
		t.Error("expected handlers to be initialized")
	}
	if app.repo == nil {
		t.Error("expected repo to be initialized")
	}
	if app.settings == nil {
		t.Error("expected settings service to be initialized")
	}
}

func TestNew_FailsWithBadDBPath(t *testing.T) {
	cfg := testConfig()
	cfg.DB.Path = "/nonexistent/path/db.sqlite"

	if _, err := New(logger.New(), cfg, auth.New("x")); err == nil {
		t.Error("expected error for invalid db path")
	}
}

func TestApp_Router_ServesRequests(t *testing.T) {
	app := createTestApp(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/standings", nil)
	rec := httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/standings", nil)
	rec = httptest.NewRecorder()
	app.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected admin routes to require a session, got %d", rec.Code)
	}
}

func TestEnsurePublicURL_SetsWhenEmpty(t *testing.T) {
	app := createTestApp(t, testConfig())
	ctx := context.Background()

	app.ensurePublicURL(ctx, "http://192.168.1.100:8080")

	val, _ := app.settings.GetPublicURL(ctx)
	if val != "http://192.168.1.100:8080" {
		t.Errorf("expected public url to be set, got: %q", val)
	}
}

func TestEnsurePublicURL_ReplacesLocalhost(t *testing.T) {
	app := createTestApp(t, testConfig())
	ctx := context.Background()

	if err := app.settings.SetPublicURL(ctx, "http://localhost:8080"); err != nil {
		t.Fatalf("failed to set initial url: %v", err)
	}
	app.ensurePublicURL(ctx, "http://192.168.1.100:8080")

	val, _ := app.settings.GetPublicURL(ctx)
	if val != "http://192.168.1.100:8080" {
		t.Errorf("expected localhost to be replaced, got: %q", val)
	}
}

func TestEnsurePublicURL_KeepsStoredURL(t *testing.T) {
	app := createTestApp(t, testConfig())
	ctx := context.Background()

	app.settings.SetPublicURL(ctx, "https://scores.example.org")
	app.ensurePublicURL(ctx, "http://192.168.1.100:8080")

	val, _ := app.settings.GetPublicURL(ctx)
	if val != "https://scores.example.org" {
		t.Errorf("expected stored url to remain, got: %q", val)
	}
}

func TestEnsurePublicURL_ConfiguredWins(t *testing.T) {
	cfg := testConfig()
	cfg.Standings.PublicURL = "https://fest.example.org"
	app := createTestApp(t, cfg)
	ctx := context.Background()

	app.settings.SetPublicURL(ctx, "https://scores.example.org")
	app.ensurePublicURL(ctx, "http://192.168.1.100:8080")

	val, _ := app.settings.GetPublicURL(ctx)
	if val != "https://fest.example.org" {
		t.Errorf("expected configured url, got: %q", val)
	}
}

func TestEnsurePublicURL_HandlesRepoError(t *testing.T) {
	app := createTestApp(t, testConfig())
	app.repo.DB().Close()

	// logs a warning only
	app.ensurePublicURL(context.Background(), "http://192.168.1.100:8080")
}

func TestApp_Run_ShutsDownOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.DB.Path = filepath.Join(t.TempDir(), "scores.db")
	app := createTestApp(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

// mockInterface implements networkInterface for testing
type mockInterface struct {
	flags net.Flags
	addrs []net.Addr
	err   error
}

func (m mockInterface) Flags() net.Flags {
	return m.flags
}

func (m mockInterface) Addrs() ([]net.Addr, error) {
	return m.addrs, m.err
}

type mockNetworkProvider struct {
	interfaces []networkInterface
	err        error
}

func (m mockNetworkProvider) Interfaces() ([]networkInterface, error) {
	return m.interfaces, m.err
}

func ipNet(s string) *net.IPNet {
	return &net.IPNet{IP: net.ParseIP(s), Mask: net.CIDRMask(24, 32)}
}

func TestGetPreferredIP(t *testing.T) {
	tests := []struct {
		name     string
		provider mockNetworkProvider
		want     string
	}{
		{
			name:     "provider error",
			provider: mockNetworkProvider{err: net.ErrClosed},
			want:     "localhost",
		},
		{
			name: "addrs error",
			provider: mockNetworkProvider{interfaces: []networkInterface{
				mockInterface{flags: net.FlagUp, err: net.ErrClosed},
			}},
			want: "localhost",
		},
		{
			name: "interface down",
			provider: mockNetworkProvider{interfaces: []networkInterface{
				mockInterface{addrs: []net.Addr{ipNet("192.168.1.5")}},
			}},
			want: "localhost",
		},
		{
			name: "loopback interface",
			provider: mockNetworkProvider{interfaces: []networkInterface{
				mockInterface{flags: net.FlagUp | net.FlagLoopback, addrs: []net.Addr{ipNet("192.168.1.5")}},
			}},
			want: "localhost",
		},
		{
			name: "ip addr",
			provider: mockNetworkProvider{interfaces: []networkInterface{
				mockInterface{flags: net.FlagUp, addrs: []net.Addr{&net.IPAddr{IP: net.ParseIP("10.1.2.3")}}},
			}},
			want: "10.1.2.3",
		},
		{
			name: "private preferred over public",
			provider: mockNetworkProvider{interfaces: []networkInterface{
				mockInterface{flags: net.FlagUp, addrs: []net.Addr{ipNet("8.8.8.8"), ipNet("172.20.0.4")}},
			}},
			want: "172.20.0.4",
		},
		{
			name: "public fallback",
			provider: mockNetworkProvider{interfaces: []networkInterface{
				mockInterface{flags: net.FlagUp, addrs: []net.Addr{ipNet("8.8.8.8")}},
			}},
			want: "8.8.8.8",
		},
		{
			name: "skips loopback and ipv6",
			provider: mockNetworkProvider{interfaces: []networkInterface{
				mockInterface{flags: net.FlagUp, addrs: []net.Addr{ipNet("127.0.0.1"), ipNet("fe80::1"), ipNet("192.168.1.50")}},
			}},
			want: "192.168.1.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getPreferredIP(tt.provider); got != tt.want {
				t.Errorf("getPreferredIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetPreferredIP_RealProvider(t *testing.T) {
	ip := getPreferredIP(realNetworkProvider{})
	if ip == "" {
		t.Fatal("IP should never be empty")
	}
	if ip != "localhost" && net.ParseIP(ip).To4() == nil {
		t.Errorf("expected IPv4 or localhost, got: %s", ip)
	}
}
