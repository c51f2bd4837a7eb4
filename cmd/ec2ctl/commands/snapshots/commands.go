package snapshots

import (
	"context"

	"github.com/catalystcommunity/ec2ctl/v1/cmd/ec2ctl/session"
	"github.com/urfave/cli/v3"
)

// NewCommand creates the top-level snapshots command
func NewCommand(newOperator session.OperatorFactory) *cli.Command {
	return &cli.Command{
		Name:  "snapshots",
		Usage: "Commands for EBS snapshots",
		Commands: []*cli.Command{
			NewListCommand(newOperator),
		},
	}
}

// NewListCommand creates the snapshots list command
func NewListCommand(newOperator session.OperatorFactory) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List EC2 volume snapshots",
		Description: `Print one line per snapshot of a volume attached to a matching instance:

  instance id, volume id, snapshot id, state, progress, start time`,
		Flags: []cli.Flag{
			session.ProjectFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			op, err := newOperator(ctx, cmd)
			if err != nil {
				return err
			}
			return op.ListSnapshots(ctx, cmd.String(session.FlagProject))
		},
	}
}
