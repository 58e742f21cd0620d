// Package codacli implements the codactl command tree.
package codacli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/yourorg/pmctl/internal/authcmd"
	"github.com/yourorg/pmctl/internal/config"
	"github.com/yourorg/pmctl/internal/export"
	"github.com/yourorg/pmctl/internal/logging"
)

type globalOptions struct {
	limiter    *rate.Limiter
	poller     *export.Poller
	configPath string
	baseURL    string
	verbose    bool
}

func (g *globalOptions) logger(cmd *cobra.Command) *slog.Logger {
	return logging.New(cmd.ErrOrStderr(), g.verbose)
}

func newRootCmd(globals *globalOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "codactl",
		Short:         "Read, search and edit Coda docs from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&globals.configPath, "config", globals.configPath,
		"Path to the config file (default $"+config.EnvConfigPath+" or ~/.config/pmctl/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&globals.verbose, "verbose", "v", false, "Log API traffic to stderr")

	rootCmd.AddCommand(newListCmd(globals))
	rootCmd.AddCommand(newGetDocCmd(globals))
	rootCmd.AddCommand(newGetPageCmd(globals))
	rootCmd.AddCommand(newGetTableCmd(globals))
	rootCmd.AddCommand(newWhoAmICmd(globals))
	rootCmd.AddCommand(newGetPageContentCmd(globals))
	rootCmd.AddCommand(newCreatePageCmd(globals))
	rootCmd.AddCommand(newUpdatePageCmd(globals))
	rootCmd.AddCommand(authcmd.New(config.ServiceCoda, "Coda", authcmd.DefaultKeyring))

	return rootCmd
}

// Execute runs the codactl command hierarchy.
func Execute() error {
	rootCmd := newRootCmd(&globalOptions{})
	rootCmd.SetErr(os.Stderr)
	rootCmd.SetOut(os.Stdout)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("execute command: %w", err)
	}
	return nil
}
