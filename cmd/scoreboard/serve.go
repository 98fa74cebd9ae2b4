package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abrezinsky/scoreboard/internal/app"
	"github.com/abrezinsky/scoreboard/internal/auth"
	"github.com/abrezinsky/scoreboard/internal/browser"
)

type serveOptions struct {
	port       int
	dbPath     string
	httpLogs   bool
	open       bool
	noKeyboard bool
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the standings and admin HTTP API",
		Long: `Serve the standings and admin HTTP API.

While running, single keys typed into the terminal control the server; press
? for the list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.port, "port", "p", 8081, "HTTP server port (overrides server.port)")
	f.StringVar(&opts.dbPath, "db", "", "SQLite database path (overrides db.path)")
	f.BoolVar(&opts.httpLogs, "http-logs", false, "Log every HTTP request")
	f.BoolVar(&opts.open, "open", false, "Open the public standings in a browser once started")
	f.BoolVar(&opts.noKeyboard, "no-keyboard", false, "Disable keyboard shortcuts")
	return cmd
}

func runServe(cmd *cobra.Command, root *rootOptions, opts *serveOptions) error {
	cfg, err := root.load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = opts.port
	}
	if cmd.Flags().Changed("db") {
		cfg.DB.Path = opts.dbPath
	}

	log := newLogger(cfg)
	if opts.httpLogs {
		log.EnableHTTPLogging()
	}
	if cfg.Admin.PasswordGenerated {
		log.Info("Admin password", "password", cfg.Admin.Password)
	}

	a, err := app.New(log, cfg, auth.New(cfg.Admin.Password))
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	serverErr := make(chan error, 1)
	go func() { serverErr <- a.Run(ctx) }()

	// give Run a moment to bind and store the public url
	time.Sleep(100 * time.Millisecond)

	op := &operator{
		out:       cmd.OutOrStdout(),
		log:       log,
		standings: a.Standings(),
		publicURL: a.PublicURL,
		open:      browser.Open,
		quit:      cancel,
		colorize:  true,
	}

	if opts.open {
		op.openPublicBoard(ctx)
	}

	if !opts.noKeyboard {
		fd := int(os.Stdin.Fd())
		if restore, err := makeRaw(fd); err != nil {
			log.Debug("Keyboard shortcuts unavailable", "error", err)
		} else {
			defer restore()
			op.printHelp()
			go op.listen(ctx, os.Stdin)
		}
	}

	return <-serverErr
}
