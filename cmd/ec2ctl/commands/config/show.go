package config

import (
	"context"
	"fmt"

	"github.com/catalystcommunity/ec2ctl/v1/cmd/ec2ctl/session"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// NewShowCommand creates the config show command
func NewShowCommand() *cli.Command {
	return &cli.Command{
		Name:        "show",
		Usage:       "Display the effective configuration",
		Description: "Shows the config file merged with flag and environment overrides.",
		Action:      runShow,
	}
}

func runShow(ctx context.Context, cmd *cli.Command) error {
	cfg, err := session.LoadConfig(cmd)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	out := session.Output(cmd)
	fmt.Fprintln(out, "---")
	fmt.Fprint(out, string(data))
	return nil
}
