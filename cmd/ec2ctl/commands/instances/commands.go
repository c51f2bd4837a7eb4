package instances

import (
	"github.com/catalystcommunity/ec2ctl/v1/cmd/ec2ctl/session"
	"github.com/urfave/cli/v3"
)

// NewCommand creates the top-level instances command
func NewCommand(newOperator session.OperatorFactory) *cli.Command {
	return &cli.Command{
		Name:  "instances",
		Usage: "Commands for EC2 instances",
		Description: `List and manage EC2 instances, optionally filtered by their Project tag.

  ec2ctl instances list     - Show instances
  ec2ctl instances start    - Start instances
  ec2ctl instances stop     - Stop instances
  ec2ctl instances snapshot - Stop, snapshot every volume, and restart`,
		Commands: []*cli.Command{
			NewListCommand(newOperator),
			NewStartCommand(newOperator),
			NewStopCommand(newOperator),
			NewSnapshotCommand(newOperator),
		},
	}
}
