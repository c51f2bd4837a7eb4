package instances

import (
	"context"

	"github.com/catalystcommunity/ec2ctl/v1/cmd/ec2ctl/session"
	"github.com/urfave/cli/v3"
)

// NewStopCommand creates the instances stop command
func NewStopCommand(newOperator session.OperatorFactory) *cli.Command {
	return &cli.Command{
		Name:  "stop",
		Usage: "Stop EC2 instances",
		Description: `Request a stop for every matching instance.

Instances the provider refuses to stop (already stopped, not permitted)
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
			return op.Stop(ctx, cmd.String(session.FlagProject))
		},
	}
}
