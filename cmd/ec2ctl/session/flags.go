package session

import (
	"github.com/urfave/cli/v3"
)

// Flag names shared across commands
const (
	FlagConfig      = "config"
	FlagProfile     = "profile"
	FlagRegion      = "region"
	FlagEndpoint    = "endpoint"
	FlagLogLevel    = "log-level"
	FlagProject     = "project"
	FlagOnError     = "on-error"
	FlagWaitTimeout = "wait-timeout"
)

// GlobalFlags returns the flags accepted by the root command
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FlagConfig,
			Aliases: []string{"c"},
			Usage:   "path to config file (default ~/.ec2ctl/config.yaml)",
			Sources: cli.EnvVars("EC2CTL_CONFIG"),
		},
		&cli.StringFlag{
			Name:    FlagProfile,
			Usage:   "AWS profile to authenticate with",
			Sources: cli.EnvVars("EC2CTL_PROFILE", "AWS_PROFILE"),
		},
		&cli.StringFlag{
			Name:    FlagRegion,
			Usage:   "AWS region (defaults to the profile's region)",
			Sources: cli.EnvVars("EC2CTL_REGION"),
		},
		&cli.StringFlag{
			Name:    FlagEndpoint,
			Usage:   "override the EC2 endpoint URL",
			Sources: cli.EnvVars("EC2CTL_ENDPOINT"),
		},
		&cli.StringFlag{
			Name:    FlagLogLevel,
			Usage:   "log level (debug, info, warn, error)",
			Sources: cli.EnvVars("LOG_LEVEL"),
		},
	}
}

// ProjectFlag returns the --project filter flag
func ProjectFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    FlagProject,
		Aliases: []string{"p"},
		Usage:   "Only instances for project (tag Project:<name>)",
	}
}

// OnErrorFlag returns the --on-error policy flag
func OnErrorFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  FlagOnError,
		Usage: "what to do when an instance fails: continue or abort",
	}
}

// WaitTimeoutFlag returns the --wait-timeout flag
func WaitTimeoutFlag() cli.Flag {
	return &cli.DurationFlag{
		Name:  FlagWaitTimeout,
		Usage: "maximum time to wait for each state transition",
	}
}
