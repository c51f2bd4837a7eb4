package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/catalystcommunity/ec2ctl/v1/internal/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromReader(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    *Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "full config",
			yaml: `
profile: work
region: eu-west-1
on_error: abort
wait_timeout: 5m
snapshot_description: nightly
`,
			want: &Config{
				Profile:             "work",
				Region:              "eu-west-1",
				OnError:             "abort",
				WaitTimeout:         "5m",
				SnapshotDescription: "nightly",
			},
		},
		{
			name: "empty config gets defaults",
			yaml: ``,
			want: Default(),
		},
		{
			name:    "invalid policy",
			yaml:    `on_error: retry`,
			wantErr: true,
			errMsg:  "config validation failed",
		},
		{
			name:    "invalid duration",
			yaml:    `wait_timeout: soon`,
			wantErr: true,
			errMsg:  "invalid duration",
		},
		{
			name:    "negative duration",
			yaml:    `wait_timeout: -1m`,
			wantErr: true,
			errMsg:  "must be positive",
		},
		{
			name:    "malformed yaml",
			yaml:    "profile: [unterminated",
			wantErr: true,
			errMsg:  "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFromReader(strings.NewReader(tt.yaml))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("non-existent file", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, cfg)
	})

	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sub", "config.yaml")
		want := &Config{
			Profile:             "ops",
			Region:              "us-west-2",
			Endpoint:            "http://localhost:4566",
			OnError:             "continue",
			WaitTimeout:         "2m0s",
			SnapshotDescription: "Created by ec2ctl",
		}

		require.NoError(t, Save(want, path))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

		got, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestSave_Invalid(t *testing.T) {
	err := Save(&Config{OnError: "sometimes"}, filepath.Join(t.TempDir(), "config.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("missing default file yields defaults", func(t *testing.T) {
		t.Setenv(EnvConfigDir, t.TempDir())

		cfg, err := LoadOrDefault("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("default file is read", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv(EnvConfigDir, dir)
		require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigName), []byte("region: ap-south-1\n"), 0600))

		cfg, err := LoadOrDefault("")
		require.NoError(t, err)
		assert.Equal(t, "ap-south-1", cfg.Region)
		assert.Equal(t, DefaultProfile, cfg.Profile)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		_, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestConfigAccessors(t *testing.T) {
	cfg := Default()

	policy, err := cfg.ErrorPolicy()
	require.NoError(t, err)
	assert.Equal(t, lifecycle.PolicyContinue, policy)

	d, err := cfg.WaitTimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, lifecycle.DefaultWaitTimeout, d)

	cfg.WaitTimeout = "90s"
	d, err = cfg.WaitTimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)

	cfg.WaitTimeout = ""
	d, err = cfg.WaitTimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, lifecycle.DefaultWaitTimeout, d)
}
