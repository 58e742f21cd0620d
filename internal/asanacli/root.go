// Package asanacli implements the asanactl command tree.
package asanacli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/yourorg/pmctl/internal/authcmd"
	"github.com/yourorg/pmctl/internal/config"
	"github.com/yourorg/pmctl/internal/logging"
)

type globalOptions struct {
	limiter    *rate.Limiter
	configPath string
	baseURL    string
	verbose    bool
	now        func() time.Time
}

func (g *globalOptions) logger(cmd *cobra.Command) *slog.Logger {
	return logging.New(cmd.ErrOrStderr(), g.verbose)
}

func (g *globalOptions) clock() time.Time {
	if g.now != nil {
		return g.now()
	}
	return time.Now()
}

func newRootCmd(globals *globalOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "asanactl",
		Short:         "Manage your personal Asana tasks from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&globals.configPath, "config", globals.configPath,
		"Path to the config file (default $"+config.EnvConfigPath+" or ~/.config/pmctl/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&globals.verbose, "verbose", "v", false, "Log API traffic to stderr")

	rootCmd.AddCommand(newListCmd(globals))
	rootCmd.AddCommand(newCompleteCmd(globals))
	rootCmd.AddCommand(newRescheduleCmd(globals))
	rootCmd.AddCommand(newUpdateCmd(globals))
	rootCmd.AddCommand(newAddCmd(globals))
	rootCmd.AddCommand(newAddSubtaskCmd(globals))
	rootCmd.AddCommand(authcmd.New(config.ServiceAsana, "Asana", authcmd.DefaultKeyring))

	return rootCmd
}

// Execute runs the asanactl command hierarchy.
func Execute() error {
	rootCmd := newRootCmd(&globalOptions{})
	rootCmd.SetErr(os.Stderr)
	rootCmd.SetOut(os.Stdout)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("execute command: %w", err)
	}
	return nil
}
