package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/catalystcommunity/ec2ctl/v1/cmd/ec2ctl/session"
	"github.com/catalystcommunity/ec2ctl/v1/internal/credentials"
	"github.com/urfave/cli/v3"
)

// NewStatusCommand creates the auth status command
func NewStatusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show which credentials the current profile uses",
		Action: runStatus,
	}
}

func runStatus(ctx context.Context, cmd *cli.Command) error {
	cfg, err := session.LoadConfig(cmd)
	if err != nil {
		return err
	}

	out := session.Output(cmd)
	fmt.Fprintf(out, "Profile: %s\n", cfg.Profile)
	if cfg.Region != "" {
		fmt.Fprintf(out, "Region:  %s\n", cfg.Region)
	}

	creds, err := credentials.Load(cfg.Profile)
	switch {
	case err == nil:
		fmt.Fprintf(out, "Credentials: stored (%s)\n", credentials.MaskedKeyID(creds.AccessKeyID))
	case errors.Is(err, credentials.ErrNotFound):
		fmt.Fprintln(out, "Credentials: shared AWS config")
	default:
		return fmt.Errorf("failed to load stored credentials: %w", err)
	}

	return nil
}
