// Package authcmd provides the "auth" command group shared by the CLIs.
package authcmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yourorg/pmctl/internal/config"
	"github.com/yourorg/pmctl/internal/prompt"
)

// Keyring is the token store behind login and logout.
type Keyring struct {
	Save   func(service, token string) error
	Delete func(service string) error
}

// DefaultKeyring stores tokens in the OS keyring.
var DefaultKeyring = Keyring{Save: config.SaveToken, Delete: config.DeleteToken}

// New returns "auth" with login and logout subcommands for service. label is
// the human-facing service name ("Asana").
func New(service, label string, store Keyring) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: fmt.Sprintf("Manage the stored %s API token", label),
	}

	cmd.AddCommand(newLoginCmd(service, label, store))
	cmd.AddCommand(newLogoutCmd(service, label, store))

	return cmd
}

type loginOptions struct {
	token string
}

func newLoginCmd(service, label string, store Keyring) *cobra.Command {
	opts := &loginOptions{}

	cmd := &cobra.Command{
		Use:           "login",
		Short:         fmt.Sprintf("Store a %s API token in the OS keyring", label),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token := strings.TrimSpace(opts.token)
			if token == "" {
				read, err := prompt.Secret(cmd.InOrStdin(), cmd.OutOrStdout(), label+" token")
				if err != nil {
					return err
				}
				token = read
			}
			if token == "" {
				return errors.New("token cannot be empty")
			}

			if err := store.Save(service, token); err != nil {
				return fmt.Errorf("save credentials: %w", err)
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Saved %s token to the keyring\n", label); err != nil {
				return fmt.Errorf("write confirmation: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.token, "token", "", fmt.Sprintf("%s API token to store (prompted if omitted)", label))

	return cmd
}

func newLogoutCmd(service, label string, store Keyring) *cobra.Command {
	return &cobra.Command{
		Use:           "logout",
		Short:         fmt.Sprintf("Remove the stored %s API token", label),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := store.Delete(service); err != nil {
				return fmt.Errorf("remove credentials: %w", err)
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed %s token from the keyring\n", label); err != nil {
				return fmt.Errorf("write confirmation: %w", err)
			}
			return nil
		},
	}
}
