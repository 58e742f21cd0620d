package asanacli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourorg/pmctl/internal/asana"
	"github.com/yourorg/pmctl/internal/config"
)

// buildClient loads the asana section of the config file and returns a
// client for it. Config errors surface before any request is made.
func buildClient(cmd *cobra.Command, globals *globalOptions) (*asana.Client, config.Asana, error) {
	path, err := config.ResolvePath(globals.configPath)
	if err != nil {
		return nil, config.Asana{}, err
	}
	cfg, err := config.LoadAsana(path)
	if err != nil {
		return nil, config.Asana{}, fmt.Errorf("load config: %w", err)
	}

	client, err := asana.NewClient(asana.ClientConfig{
		Token:   cfg.APIToken,
		BaseURL: globals.baseURL,
		Logger:  globals.logger(cmd),
		Limiter: globals.limiter,
	})
	if err != nil {
		return nil, config.Asana{}, err
	}
	return client, cfg, nil
}
