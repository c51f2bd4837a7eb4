package config

import (
	"context"
	"fmt"

	"github.com/catalystcommunity/ec2ctl/v1/cmd/ec2ctl/session"
	"github.com/catalystcommunity/ec2ctl/v1/internal/config"
	"github.com/urfave/cli/v3"
)

// NewPathCommand creates the config path command
func NewPathCommand() *cli.Command {
	return &cli.Command{
		Name:  "path",
		Usage: "Print the config file location",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.String(session.FlagConfig)
			if path == "" {
				p, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				path = p
			}
			fmt.Fprintln(session.Output(cmd), path)
			return nil
		},
	}
}
