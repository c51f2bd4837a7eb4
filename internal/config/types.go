package config

import (
	"fmt"
	"time"

	"github.com/catalystcommunity/ec2ctl/v1/internal/lifecycle"
)

// DefaultProfile is the shared AWS config profile used when none is set
const DefaultProfile = "default"

// Config holds the user settings for ec2ctl
type Config struct {
	// Profile is the named AWS profile (and keyring entry) to authenticate with
	Profile string `yaml:"profile,omitempty"`
	// Region overrides the region of the profile
	Region string `yaml:"region,omitempty"`
	// Endpoint overrides the EC2 endpoint, e.g. for LocalStack
	Endpoint string `yaml:"endpoint,omitempty"`
	// OnError is the per-instance error policy: continue or abort
	OnError string `yaml:"on_error,omitempty"`
	// WaitTimeout bounds each wait for a state transition, e.g. "10m"
	WaitTimeout string `yaml:"wait_timeout,omitempty"`
	// SnapshotDescription is attached to created snapshots
	SnapshotDescription string `yaml:"snapshot_description,omitempty"`
}

// Default returns a config with every field set to its default
func Default() *Config {
	return &Config{
		Profile:             DefaultProfile,
		OnError:             string(lifecycle.DefaultErrorPolicy),
		WaitTimeout:         lifecycle.DefaultWaitTimeout.String(),
		SnapshotDescription: lifecycle.DefaultSnapshotDescription,
	}
}

// ApplyDefaults fills in unset fields
func (c *Config) ApplyDefaults() {
	d := Default()
	if c.Profile == "" {
		c.Profile = d.Profile
	}
	if c.OnError == "" {
		c.OnError = d.OnError
	}
	if c.WaitTimeout == "" {
		c.WaitTimeout = d.WaitTimeout
	}
	if c.SnapshotDescription == "" {
		c.SnapshotDescription = d.SnapshotDescription
	}
}

// Validate performs validation on the Config struct
func (c *Config) Validate() error {
	if _, err := lifecycle.ParseErrorPolicy(c.OnError); err != nil {
		return fmt.Errorf("on_error: %w", err)
	}

	if c.WaitTimeout != "" {
		if _, err := c.WaitTimeoutDuration(); err != nil {
			return err
		}
	}

	return nil
}

// ErrorPolicy returns the parsed error policy
func (c *Config) ErrorPolicy() (lifecycle.ErrorPolicy, error) {
	return lifecycle.ParseErrorPolicy(c.OnError)
}

// WaitTimeoutDuration returns the parsed wait timeout, or the default if unset
func (c *Config) WaitTimeoutDuration() (time.Duration, error) {
	if c.WaitTimeout == "" {
		return lifecycle.DefaultWaitTimeout, nil
	}

	d, err := time.ParseDuration(c.WaitTimeout)
	if err != nil {
		return 0, fmt.Errorf("wait_timeout: invalid duration %q: %w", c.WaitTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("wait_timeout: must be positive, got %s", d)
	}

	return d, nil
}
