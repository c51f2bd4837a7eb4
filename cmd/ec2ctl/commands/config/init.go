package config

import (
	"context"
	"fmt"
	"os"

	"github.com/catalystcommunity/ec2ctl/v1/cmd/ec2ctl/session"
	"github.com/catalystcommunity/ec2ctl/v1/internal/config"
	"github.com/urfave/cli/v3"
)

// NewInitCommand creates the config init command
func NewInitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create a new configuration file",
		Description: `Writes a config file with every setting at its default. The global
--profile, --region and --endpoint flags are recorded when given.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "overwrite existing config file",
			},
		},
		Action: runInit,
	}
}

func runInit(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String(session.FlagConfig)
	if configPath == "" {
		if _, err := config.EnsureConfigDir(); err != nil {
			return err
		}
		path, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		configPath = path
	}

	if _, err := os.Stat(configPath); err == nil && !cmd.Bool("force") {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", configPath)
	}

	cfg := config.Default()
	if profile := cmd.String(session.FlagProfile); profile != "" {
		cfg.Profile = profile
	}
	cfg.Region = cmd.String(session.FlagRegion)
	cfg.Endpoint = cmd.String(session.FlagEndpoint)

	if err := config.Save(cfg, configPath); err != nil {
		return err
	}

	fmt.Fprintf(session.Output(cmd), "Created config file: %s\n", configPath)
	return nil
}
