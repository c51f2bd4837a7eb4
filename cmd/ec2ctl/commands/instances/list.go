package instances

import (
	"context"

	"github.com/catalystcommunity/ec2ctl/v1/cmd/ec2ctl/session"
	"github.com/urfave/cli/v3"
)

// NewListCommand creates the instances list command
func NewListCommand(newOperator session.OperatorFactory) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List EC2 instances",
		Description: `Print one line per instance:

  id, type, availability zone, state, public DNS name, project`,
		Flags: []cli.Flag{
			session.ProjectFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			op, err := newOperator(ctx, cmd)
			if err != nil {
				return err
			}
			return op.List(ctx, cmd.String(session.FlagProject))
		},
	}
}
