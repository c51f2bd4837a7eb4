package auth

import "github.com/urfave/cli/v3"

// NewCommand creates the top-level auth command
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage AWS credentials stored for a profile",
		Description: `Credentials stored here are used instead of the shared AWS config
for the selected profile. They are kept in the OS keyring, or in a
file readable only by you when no keyring is available.`,
		Commands: []*cli.Command{
			NewLoginCommand(),
			NewLogoutCommand(),
			NewStatusCommand(),
		},
	}
}
