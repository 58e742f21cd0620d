package codacli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourorg/pmctl/internal/render"
)

func newWhoAmICmd(globals *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the user behind the API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := buildClient(cmd, globals)
			if err != nil {
				return err
			}
			user, err := client.WhoAmI(cmd.Context())
			if err != nil {
				return fmt.Errorf("whoami: %w", err)
			}

			workspace := ""
			if user.Workspace != nil {
				workspace = user.Workspace.Name
			}

			p := render.NewPrinter(cmd.OutOrStdout())
			p.Linef("Name: %s", render.OrDefault(user.Name, notAvailable))
			p.Linef("Login ID: %s", render.OrDefault(user.LoginID, notAvailable))
			p.Linef("Type: %s", render.OrDefault(user.Type, notAvailable))
			p.Linef("Workspace: %s", render.OrDefault(workspace, notAvailable))
			return p.Err()
		},
	}
}
