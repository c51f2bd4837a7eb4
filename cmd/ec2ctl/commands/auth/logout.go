package auth

import (
	"context"
	"fmt"

	"github.com/catalystcommunity/ec2ctl/v1/cmd/ec2ctl/session"
	"github.com/catalystcommunity/ec2ctl/v1/internal/credentials"
	"github.com/urfave/cli/v3"
)

// NewLogoutCommand creates the auth logout command
func NewLogoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Remove the stored access key for the current profile",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := session.LoadConfig(cmd)
			if err != nil {
				return err
			}

			if err := credentials.Clear(cfg.Profile); err != nil {
				return err
			}

			fmt.Fprintf(session.Output(cmd), "Removed stored credentials for profile %s\n", cfg.Profile)
			return nil
		},
	}
}
