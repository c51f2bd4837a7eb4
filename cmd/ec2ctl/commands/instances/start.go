package instances

import (
	"context"

	"github.com/catalystcommunity/ec2ctl/v1/cmd/ec2ctl/session"
	"github.com/urfave/cli/v3"
)

// NewStartCommand creates the instances start command
func NewStartCommand(newOperator session.OperatorFactory) *cli.Command {
	return &cli.Command{
		Name:  "start",
		Usage: "Start EC2 instances",
		Description: `Request a start for every matching instance.

Instances the provider refuses to start (already running, not permitted)
are reported and skipped unless --on-error=abort is given.`,
		Flags: []cli.Flag{
			session.ProjectFlag(),
			session.OnErrorFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			op, err := newOperator(ctx, cmd)
			if err != nil {
				return err
			}
			return op.Start(ctx, cmd.String(session.FlagProject))
		},
	}
}
