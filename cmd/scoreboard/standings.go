package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abrezinsky/scoreboard/internal/console"
	"github.com/abrezinsky/scoreboard/internal/logger"
	"github.com/abrezinsky/scoreboard/internal/repository"
	"github.com/abrezinsky/scoreboard/internal/services"
	"github.com/abrezinsky/scoreboard/internal/snapshot"
)

type standingsOptions struct {
	snapshotPath string
	dbPath       string
	dimension    string
	scope        string
	section      string
	individuals  bool
	showZero     bool
	noColor      bool
}

func newStandingsCmd(root *rootOptions) *cobra.Command {
	opts := &standingsOptions{}

	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Print a leaderboard",
		Long: `Print a team or individual leaderboard.

Results are read from --snapshot when given, otherwise from the record store
(--db, or db.path from config).`,
		Example: `  scoreboard standings --scope admin
  scoreboard standings --snapshot festival.yaml --dimension arts
  scoreboard standings --individuals --section senior`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStandings(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.snapshotPath, "snapshot", "", "Read records from a YAML snapshot instead of the database")
	f.StringVar(&opts.dbPath, "db", "", "SQLite database path (overrides db.path)")
	f.StringVarP(&opts.dimension, "dimension", "d", "total", "Ranking dimension (total|arts|sports|stage|non-stage)")
	f.StringVarP(&opts.scope, "scope", "s", "public", "Result statuses to count (public|admin|all)")
	f.BoolVarP(&opts.individuals, "individuals", "i", false, "Rank candidates instead of teams")
	f.StringVar(&opts.section, "section", "", "Restrict individual standings to one section")
	f.BoolVar(&opts.showZero, "show-zero", false, "Keep entries with zero points")
	f.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.MarkFlagsMutuallyExclusive("snapshot", "db")
	return cmd
}

func runStandings(cmd *cobra.Command, root *rootOptions, opts *standingsOptions) error {
	if opts.section != "" && !opts.individuals {
		return fmt.Errorf("--section only applies to --individuals")
	}
	q, err := services.ParseStandingsQuery(opts.dimension, opts.scope, opts.section, opts.showZero)
	if err != nil {
		return err
	}

	var st *services.Standings
	title := "Team standings"
	if opts.individuals {
		title = "Individual standings"
	}

	if opts.snapshotPath != "" {
		snap, err := snapshot.Load(opts.snapshotPath)
		if err != nil {
			return err
		}
		if opts.individuals {
			st = services.ComputeIndividualStandings(snap, q)
		} else {
			st = services.ComputeTeamStandings(snap, q)
		}
	} else {
		dbPath := opts.dbPath
		if dbPath == "" {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			dbPath = cfg.DB.Path
		}

		repo, err := repository.New(dbPath)
		if err != nil {
			return err
		}
		defer repo.Close()

		svc := services.NewStandingsService(logger.Nop(), repo)
		ctx := context.Background()
		if opts.individuals {
			st, err = svc.IndividualStandings(ctx, q)
		} else {
			st, err = svc.TeamStandings(ctx, q)
		}
		if err != nil {
			return err
		}
	}

	console.NewRenderer(cmd.OutOrStdout(), !opts.noColor).Standings(title, st)
	return nil
}
