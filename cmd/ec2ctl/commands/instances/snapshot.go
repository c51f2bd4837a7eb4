package instances

import (
	"context"

	"github.com/catalystcommunity/ec2ctl/v1/cmd/ec2ctl/session"
	"github.com/urfave/cli/v3"
)

// NewSnapshotCommand creates the instances snapshot command
func NewSnapshotCommand(newOperator session.OperatorFactory) *cli.Command {
	return &cli.Command{
		Name:  "snapshot",
		Usage: "Create snapshots of all volumes",
		Description: `For every pending or running instance:

  1. stop it and wait until it is stopped
  2. snapshot each attached volume
  3. start it and wait until it is running

Instances are processed one at a time. If any step fails after the stop
was requested, the instance is started again before moving on.`,
		Flags: []cli.Flag{
			session.ProjectFlag(),
			session.OnErrorFlag(),
			session.WaitTimeoutFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			op, err := newOperator(ctx, cmd)
			if err != nil {
				return err
			}
			return op.Snapshot(ctx, cmd.String(session.FlagProject))
		},
	}
}
