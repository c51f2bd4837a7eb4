package config

import "github.com/urfave/cli/v3"

// NewCommand creates the top-level config command
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the ec2ctl configuration file",
		Commands: []*cli.Command{
			NewInitCommand(),
			NewShowCommand(),
			NewPathCommand(),
		},
	}
}
