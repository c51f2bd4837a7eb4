package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/catalystcommunity/ec2ctl/v1/internal/config"
	"github.com/catalystcommunity/ec2ctl/v1/internal/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"github.com/zalando/go-keyring"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvConfigDir, dir)
	for _, env := range []string{"EC2CTL_CONFIG", "EC2CTL_PROFILE", "AWS_PROFILE", "EC2CTL_REGION", "EC2CTL_ENDPOINT"} {
		t.Setenv(env, "")
	}
	return dir
}

// loadWith runs a root command with the given args and returns the config
// LoadConfig resolved for it
func loadWith(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	var (
		cfg     *config.Config
		loadErr error
	)
	root := &cli.Command{
		Name:  "ec2ctl",
		Flags: GlobalFlags(),
		Commands: []*cli.Command{{
			Name:  "run",
			Flags: []cli.Flag{OnErrorFlag(), WaitTimeoutFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg, loadErr = LoadConfig(cmd)
				return nil
			},
		}},
	}
	require.NoError(t, root.Run(context.Background(), append([]string{"ec2ctl"}, args...)))
	return cfg, loadErr
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := loadWith(t, "run")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfig_Overrides(t *testing.T) {
	isolate(t)

	cfg, err := loadWith(t,
		"--profile", "ops",
		"--region", "us-west-2",
		"--endpoint", "http://localhost:4566",
		"run", "--on-error", "abort", "--wait-timeout", "90s")
	require.NoError(t, err)

	assert.Equal(t, "ops", cfg.Profile)
	assert.Equal(t, "us-west-2", cfg.Region)
	assert.Equal(t, "http://localhost:4566", cfg.Endpoint)
	assert.Equal(t, "abort", cfg.OnError)
	assert.Equal(t, "1m30s", cfg.WaitTimeout)
}

func TestLoadConfig_EmptyEnvKeepsFileValues(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultConfigName),
		[]byte("profile: ops\nregion: eu-west-1\nendpoint: http://localhost:4566\non_error: abort\n"), 0600))

	// isolate exports every override variable as an empty string
	cfg, err := loadWith(t, "run")
	require.NoError(t, err)

	assert.Equal(t, "ops", cfg.Profile)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "http://localhost:4566", cfg.Endpoint)
	assert.Equal(t, "abort", cfg.OnError)

	t.Setenv("EC2CTL_REGION", "us-east-2")
	cfg, err = loadWith(t, "run")
	require.NoError(t, err)
	assert.Equal(t, "us-east-2", cfg.Region)
}

func TestLoadConfig_ExplicitMissingFile(t *testing.T) {
	isolate(t)

	_, err := loadWith(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "run")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrNotFound)
}

func TestLoadConfig_InvalidOverride(t *testing.T) {
	isolate(t)

	_, err := loadWith(t, "run", "--on-error", "sometimes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "on_error")
}

func TestNewEC2Provider(t *testing.T) {
	keyring.MockInit()
	dir := isolate(t)
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "aws-config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "aws-credentials"))
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")

	t.Run("stored credentials", func(t *testing.T) {
		require.NoError(t, credentials.Store("ops", &credentials.Credentials{
			AccessKeyID:     "AKIAOPS",
			SecretAccessKey: "secret",
		}))

		cfg := &config.Config{Profile: "ops", Region: "us-east-1"}
		p, err := NewEC2Provider(context.Background(), cfg)
		require.NoError(t, err)
		assert.NotNil(t, p)
	})

	t.Run("unknown profile without stored credentials", func(t *testing.T) {
		cfg := &config.Config{Profile: "nobody", Region: "us-east-1"}
		_, err := NewEC2Provider(context.Background(), cfg)
		require.Error(t, err)
	})
}

func TestOutputAndInput(t *testing.T) {
	cmd := &cli.Command{Name: "bare"}
	assert.Equal(t, os.Stdout, Output(cmd))
	assert.Equal(t, os.Stdin, Input(cmd))
}
