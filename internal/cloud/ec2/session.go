package ec2

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscredentials "github.com/aws/aws-sdk-go-v2/credentials"
)

// StaticCredentials are long-lived keys used instead of the shared config profile
type StaticCredentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// SessionOptions selects how the AWS session is authenticated
type SessionOptions struct {
	// Profile is a named profile from the shared AWS config files
	Profile string
	// Region overrides the region resolved from the profile or environment
	Region string
	// Credentials, when set, take precedence over Profile
	Credentials *StaticCredentials
}

// NewSession loads an AWS config for the given options
func NewSession(ctx context.Context, opts SessionOptions) (aws.Config, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error

	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}

	if opts.Credentials != nil {
		if opts.Credentials.AccessKeyID == "" || opts.Credentials.SecretAccessKey == "" {
			return aws.Config{}, fmt.Errorf("static credentials require an access key ID and a secret access key")
		}
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			awscredentials.NewStaticCredentialsProvider(
				opts.Credentials.AccessKeyID,
				opts.Credentials.SecretAccessKey,
				opts.Credentials.SessionToken,
			),
		))
		slog.Debug("using stored credentials", slog.String("profile", opts.Profile))
	}

	// The profile still supplies region and other settings when stored
	// credentials replace its keys
	cfg, err := loadConfig(ctx, loadOpts, opts.Profile)
	if err != nil {
		var notExist awsconfig.SharedConfigProfileNotExistError
		if opts.Credentials == nil || !errors.As(err, &notExist) {
			return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
		}

		// Profiles created by "ec2ctl auth login" need not exist in ~/.aws/config
		slog.Debug("profile not in shared config, using stored credentials only", slog.String("profile", opts.Profile))
		if cfg, err = loadConfig(ctx, loadOpts, ""); err != nil {
			return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
		}
	}

	if cfg.Region == "" {
		return aws.Config{}, fmt.Errorf("no AWS region configured (set --region, EC2CTL_REGION, or a region in profile %q)", opts.Profile)
	}

	return cfg, nil
}

func loadConfig(ctx context.Context, loadOpts []func(*awsconfig.LoadOptions) error, profile string) (aws.Config, error) {
	if profile != "" {
		loadOpts = append(loadOpts[:len(loadOpts):len(loadOpts)], awsconfig.WithSharedConfigProfile(profile))
	}
	return awsconfig.LoadDefaultConfig(ctx, loadOpts...)
}
