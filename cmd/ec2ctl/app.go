package main

import (
	"context"
	"fmt"

	authcmd "github.com/catalystcommunity/ec2ctl/v1/cmd/ec2ctl/commands/auth"
	configcmd "github.com/catalystcommunity/ec2ctl/v1/cmd/ec2ctl/commands/config"
	instancescmd "github.com/catalystcommunity/ec2ctl/v1/cmd/ec2ctl/commands/instances"
	snapshotscmd "github.com/catalystcommunity/ec2ctl/v1/cmd/ec2ctl/commands/snapshots"
	volumescmd "github.com/catalystcommunity/ec2ctl/v1/cmd/ec2ctl/commands/volumes"
	"github.com/catalystcommunity/ec2ctl/v1/cmd/ec2ctl/session"
	"github.com/catalystcommunity/ec2ctl/v1/internal/logging"
	"github.com/urfave/cli/v3"
)

// newApp builds the root command. Commands that talk to EC2 get their
// operator from newOperator.
func newApp(newOperator session.OperatorFactory) *cli.Command {
	return &cli.Command{
		Name:    "ec2ctl",
		Usage:   "List, start, stop and snapshot EC2 instances by Project tag",
		Version: fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
		Flags:   session.GlobalFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel("ec2ctl", Version, cmd.String(session.FlagLogLevel))
			return ctx, nil
		},
		Commands: []*cli.Command{
			instancescmd.NewCommand(newOperator),
			volumescmd.NewCommand(newOperator),
			snapshotscmd.NewCommand(newOperator),
			configcmd.NewCommand(),
			authcmd.NewCommand(),
		},
	}
}
