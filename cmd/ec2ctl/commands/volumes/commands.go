package volumes

import (
	"context"

	"github.com/catalystcommunity/ec2ctl/v1/cmd/ec2ctl/session"
	"github.com/urfave/cli/v3"
)

// NewCommand creates the top-level volumes command
func NewCommand(newOperator session.OperatorFactory) *cli.Command {
	return &cli.Command{
		Name:  "volumes",
		Usage: "Commands for EBS volumes",
		Commands: []*cli.Command{
			NewListCommand(newOperator),
		},
	}
}

// NewListCommand creates the volumes list command
func NewListCommand(newOperator session.OperatorFactory) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List EC2 volumes",
		Description: `Print one line per volume attached to a matching instance:

  instance id, volume id, size, state, encryption`,
		Flags: []cli.Flag{
			session.ProjectFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			op, err := newOperator(ctx, cmd)
			if err != nil {
				return err
			}
			return op.ListVolumes(ctx, cmd.String(session.FlagProject))
		},
	}
}
