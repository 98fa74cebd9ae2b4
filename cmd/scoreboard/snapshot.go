package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abrezinsky/scoreboard/internal/repository"
	"github.com/abrezinsky/scoreboard/internal/services"
	"github.com/abrezinsky/scoreboard/internal/snapshot"
)

// openRoster opens the record store named by --db or config
func openRoster(root *rootOptions, dbPath string) (*services.RosterService, *repository.Repository, error) {
	cfg, err := root.load()
	if err != nil {
		return nil, nil, err
	}
	if dbPath == "" {
		dbPath = cfg.DB.Path
	}
	repo, err := repository.New(dbPath)
	if err != nil {
		return nil, nil, err
	}
	return services.NewRosterService(newLogger(cfg), repo), repo, nil
}

func newSeedCmd(root *rootOptions) *cobra.Command {
	var snapshotPath, dbPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a YAML snapshot into the record store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshot.Load(snapshotPath)
			if err != nil {
				return err
			}

			roster, repo, err := openRoster(root, dbPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			sum, err := roster.Import(context.Background(), snap)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d teams, %d candidates, %d programmes, %d results (%d skipped)\n",
				sum.Teams, sum.Candidates, sum.Programmes, sum.Results, sum.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "YAML snapshot to load")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides db.path)")
	cmd.MarkFlagRequired("snapshot")
	return cmd
}

func newExportCmd(root *rootOptions) *cobra.Command {
	var outPath, dbPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every stored record to a YAML snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, repo, err := openRoster(root, dbPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			snap, err := roster.Export(context.Background())
			if err != nil {
				return err
			}
			if outPath == "" {
				return snapshot.Encode(cmd.OutOrStdout(), snap)
			}
			if err := snapshot.Save(outPath, snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (stdout when empty)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides db.path)")
	return cmd
}
