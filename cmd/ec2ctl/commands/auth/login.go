package auth

import (
	"context"
	"fmt"

	"github.com/catalystcommunity/ec2ctl/v1/cmd/ec2ctl/session"
	"github.com/catalystcommunity/ec2ctl/v1/internal/credentials"
	"github.com/urfave/cli/v3"
)

// NewLoginCommand creates the auth login command
func NewLoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Store an access key for the current profile",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "access-key-id",
				Usage: "AWS access key ID (will prompt if not provided)",
			},
			&cli.BoolFlag{
				Name:  "session-token",
				Usage: "also prompt for a session token",
			},
		},
		Action: runLogin,
	}
}

func runLogin(ctx context.Context, cmd *cli.Command) error {
	cfg, err := session.LoadConfig(cmd)
	if err != nil {
		return err
	}

	out := session.Output(cmd)
	p := newPrompter(session.Input(cmd), out)

	creds := &credentials.Credentials{AccessKeyID: cmd.String("access-key-id")}
	if creds.AccessKeyID == "" {
		if creds.AccessKeyID, err = p.prompt("AWS Access Key ID"); err != nil {
			return err
		}
	}
	if creds.SecretAccessKey, err = p.promptSecret("AWS Secret Access Key"); err != nil {
		return err
	}
	if cmd.Bool("session-token") {
		if creds.SessionToken, err = p.promptSecret("AWS Session Token"); err != nil {
			return err
		}
	}

	if err := credentials.Store(cfg.Profile, creds); err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}

	fmt.Fprintf(out, "Stored credentials for profile %s (%s)\n", cfg.Profile, credentials.MaskedKeyID(creds.AccessKeyID))
	return nil
}
