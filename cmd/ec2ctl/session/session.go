// Package session resolves settings from flags, environment and the config
// file, and builds the provider and operator used by commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/catalystcommunity/ec2ctl/v1/internal/cloud"
	"github.com/catalystcommunity/ec2ctl/v1/internal/cloud/ec2"
	"github.com/catalystcommunity/ec2ctl/v1/internal/config"
	"github.com/catalystcommunity/ec2ctl/v1/internal/credentials"
	"github.com/catalystcommunity/ec2ctl/v1/internal/lifecycle"
	"github.com/urfave/cli/v3"
)

// ProviderFactory creates the cloud provider for a resolved config
type ProviderFactory func(ctx context.Context, cfg *config.Config) (cloud.Provider, error)

// OperatorFactory creates the lifecycle operator used by a command
type OperatorFactory func(ctx context.Context, cmd *cli.Command) (*lifecycle.Operator, error)

// LoadConfig loads the config file and applies flag and environment overrides
func LoadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(cmd.String(FlagConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// An exported but empty variable counts as set; it must not clear the file
	overrides := map[string]*string{
		FlagProfile:  &cfg.Profile,
		FlagRegion:   &cfg.Region,
		FlagEndpoint: &cfg.Endpoint,
		FlagOnError:  &cfg.OnError,
	}
	for name, field := range overrides {
		if v := cmd.String(name); cmd.IsSet(name) && v != "" {
			*field = v
		}
	}
	if cmd.IsSet(FlagWaitTimeout) {
		cfg.WaitTimeout = cmd.Duration(FlagWaitTimeout).String()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewEC2Provider builds an EC2-backed provider. Credentials stored with
// "ec2ctl auth login" take precedence over the shared config profile.
func NewEC2Provider(ctx context.Context, cfg *config.Config) (cloud.Provider, error) {
	opts := ec2.SessionOptions{
		Profile: cfg.Profile,
		Region:  cfg.Region,
	}

	creds, err := credentials.Load(cfg.Profile)
	switch {
	case err == nil:
		opts.Credentials = &ec2.StaticCredentials{
			AccessKeyID:     creds.AccessKeyID,
			SecretAccessKey: creds.SecretAccessKey,
			SessionToken:    creds.SessionToken,
		}
	case errors.Is(err, credentials.ErrNotFound):
	default:
		return nil, fmt.Errorf("failed to load stored credentials: %w", err)
	}

	awsCfg, err := ec2.NewSession(ctx, opts)
	if err != nil {
		return nil, err
	}

	return ec2.NewFromConfig(awsCfg, cfg.Endpoint)
}

// NewOperatorFactory returns an OperatorFactory that creates providers with newProvider
func NewOperatorFactory(newProvider ProviderFactory) OperatorFactory {
	return func(ctx context.Context, cmd *cli.Command) (*lifecycle.Operator, error) {
		cfg, err := LoadConfig(cmd)
		if err != nil {
			return nil, err
		}

		policy, err := cfg.ErrorPolicy()
		if err != nil {
			return nil, err
		}
		timeout, err := cfg.WaitTimeoutDuration()
		if err != nil {
			return nil, err
		}

		provider, err := newProvider(ctx, cfg)
		if err != nil {
			return nil, err
		}

		return lifecycle.NewOperator(provider, Output(cmd),
			lifecycle.WithErrorPolicy(policy),
			lifecycle.WithWaitTimeout(timeout),
			lifecycle.WithSnapshotDescription(cfg.SnapshotDescription),
		)
	}
}

// DefaultOperatorFactory builds operators backed by EC2
var DefaultOperatorFactory = NewOperatorFactory(NewEC2Provider)

// Output returns the writer command results go to
func Output(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

// Input returns the reader interactive prompts read from
func Input(cmd *cli.Command) io.Reader {
	if root := cmd.Root(); root != nil && root.Reader != nil {
		return root.Reader
	}
	return os.Stdin
}
