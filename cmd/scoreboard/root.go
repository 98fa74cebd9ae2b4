package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abrezinsky/scoreboard/internal/config"
	"github.com/abrezinsky/scoreboard/internal/logger"
)

// rootOptions are flags shared by every subcommand
type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "scoreboard",
		Short: "Festival scoring and ranking engine",
		Long: `Scoreboard records festival programme results and turns them into team and
individual leaderboards.

Run "scoreboard serve" to start the HTTP API, or "scoreboard standings" to
print a leaderboard from the record store or a snapshot file.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default ./"+config.DefaultFile+" if present)")

	cmd.AddCommand(
		newServeCmd(opts),
		newStandingsCmd(opts),
		newSeedCmd(opts),
		newExportCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func (o *rootOptions) load() (*config.Config, error) {
	return config.Load(o.configPath)
}

// newLogger builds the process logger from config
func newLogger(cfg *config.Config) *logger.SlogLogger {
	format, _ := logger.ParseFormat(cfg.Log.Format)
	return logger.NewWithOptions(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: format,
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "scoreboard %s\n", version)
		},
	}
}
