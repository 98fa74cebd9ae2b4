package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abrezinsky/scoreboard/internal/auth"
	"github.com/abrezinsky/scoreboard/internal/config"
	"github.com/abrezinsky/scoreboard/internal/handlers"
	"github.com/abrezinsky/scoreboard/internal/logger"
	"github.com/abrezinsky/scoreboard/internal/repository"
	"github.com/abrezinsky/scoreboard/internal/services"
)

const shutdownTimeout = 10 * time.Second

// App holds all application dependencies
type App struct {
	log       logger.Logger
	cfg       *config.Config
	handlers  *handlers.Handlers
	repo      *repository.Repository
	settings  *services.SettingsService
	standings *services.StandingsService
}

// New opens the record store and wires services and handlers
func New(log logger.Logger, cfg *config.Config, adminAuth *auth.Auth) (*App, error) {
	repo, err := repository.New(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}

	rosterService := services.NewRosterService(log, repo)
	resultService := services.NewResultService(log, repo)
	standingsService := services.NewStandingsService(log, repo)
	settingsService := services.NewSettingsService(log, repo)

	h := handlers.New(
		rosterService,
		resultService,
		standingsService,
		settingsService,
		adminAuth,
		log,
		handlers.Options{HideZero: cfg.Standings.HideZero},
	)

	return &App{
		log:       log,
		cfg:       cfg,
		handlers:  h,
		repo:      repo,
		settings:  settingsService,
		standings: standingsService,
	}, nil
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// Standings returns the standings service behind the HTTP API
func (a *App) Standings() *services.StandingsService {
	return a.standings
}

// PublicURL returns the stored public standings address, "" if unset
func (a *App) PublicURL(ctx context.Context) (string, error) {
	return a.settings.GetPublicURL(ctx)
}

// Close releases the record store
func (a *App) Close() error {
	return a.repo.Close()
}

// Run serves HTTP on the configured port until ctx is cancelled, then shuts
// the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	addr := a.cfg.Addr()
	ip := getPreferredIP(realNetworkProvider{})
	a.ensurePublicURL(ctx, fmt.Sprintf("http://%s%s", ip, addr))

	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("Server starting", "addr", addr, "standings", fmt.Sprintf("http://%s%s/api/standings", ip, addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.log.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// ensurePublicURL stores the address printed on standings QR codes. A
// configured URL always wins; otherwise detected is used when nothing is
// stored yet or the stored value points at localhost.
func (a *App) ensurePublicURL(ctx context.Context, detected string) {
	if configured := a.cfg.Standings.PublicURL; configured != "" {
		if err := a.settings.SetPublicURL(ctx, configured); err != nil {
			a.log.Warn("Ignoring configured public url", "url", configured, "error", err)
		}
		return
	}

	existing, err := a.settings.GetPublicURL(ctx)
	if err != nil {
		a.log.Warn("Failed to read public url", "error", err)
		return
	}
	if existing != "" && !strings.Contains(existing, "localhost") {
		return
	}

	if err := a.settings.SetPublicURL(ctx, detected); err != nil {
		a.log.Warn("Failed to set default public url", "error", err)
		return
	}
	a.log.Info("Default public url set", "url", detected)
}

// networkInterface wraps net.Interface for testing
type networkInterface interface {
	Flags() net.Flags
	Addrs() ([]net.Addr, error)
}

type realInterface struct {
	iface net.Interface
}

func (r realInterface) Flags() net.Flags {
	return r.iface.Flags
}

func (r realInterface) Addrs() ([]net.Addr, error) {
	return r.iface.Addrs()
}

// networkProvider lists network interfaces
type networkProvider interface {
	Interfaces() ([]networkInterface, error)
}

type realNetworkProvider struct{}

func (realNetworkProvider) Interfaces() ([]networkInterface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	result := make([]networkInterface, len(ifaces))
	for i, iface := range ifaces {
		result[i] = realInterface{iface: iface}
	}
	return result, nil
}

// getPreferredIP returns the address venue screens and phones on the LAN
// should use. Private IPv4 ranges win, then any non-loopback IPv4, then
// "localhost".
func getPreferredIP(provider networkProvider) string {
	ifaces, err := provider.Interfaces()
	if err != nil {
		return "localhost"
	}

	var candidates []net.IP
	for _, iface := range ifaces {
		flags := iface.Flags()
		if flags&net.FlagUp == 0 || flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip == nil || ip.To4() == nil || ip.IsLoopback() {
				continue
			}
			candidates = append(candidates, ip)
		}
	}

	for _, ip := range candidates {
		if ip.IsPrivate() {
			return ip.String()
		}
	}
	if len(candidates) > 0 {
		return candidates[0].String()
	}
	return "localhost"
}
