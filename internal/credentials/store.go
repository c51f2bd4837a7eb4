package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/catalystcommunity/ec2ctl/v1/internal/config"
	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"
)

const (
	// KeyringService is the service name used in the OS keyring
	KeyringService = "ec2ctl"
	// fallbackFilePrefix names the fallback files, one per profile
	fallbackFilePrefix = "credentials-"
)

// ErrNotFound is returned when no credentials are stored for a profile
var ErrNotFound = errors.New("no stored credentials")

// Credentials are long-lived AWS access keys
type Credentials struct {
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	SessionToken    string `yaml:"session_token,omitempty"`
}

// Validate checks that both halves of the key pair are present
func (c *Credentials) Validate() error {
	if c.AccessKeyID == "" {
		return fmt.Errorf("access key ID cannot be empty")
	}
	if c.SecretAccessKey == "" {
		return fmt.Errorf("secret access key cannot be empty")
	}
	return nil
}

// Store saves credentials for a profile in the OS keyring.
// Falls back to file storage if keyring is unavailable.
func Store(profile string, creds *Credentials) error {
	if err := validateProfile(profile); err != nil {
		return err
	}
	if creds == nil {
		return fmt.Errorf("credentials cannot be nil")
	}
	if err := creds.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := keyring.Set(KeyringService, profile, string(data)); err == nil {
		return nil
	}

	return storeInFile(profile, data)
}

// Load retrieves the credentials stored for a profile.
// Returns ErrNotFound if neither the keyring nor the fallback file has them.
func Load(profile string) (*Credentials, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	data, err := keyring.Get(KeyringService, profile)
	if err != nil {
		fileData, ferr := loadFromFile(profile)
		if ferr != nil {
			return nil, ferr
		}
		data = string(fileData)
	}

	var creds Credentials
	if err := yaml.Unmarshal([]byte(data), &creds); err != nil {
		return nil, fmt.Errorf("failed to parse stored credentials for profile %s: %w", profile, err)
	}
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("stored credentials for profile %s are incomplete: %w", profile, err)
	}

	return &creds, nil
}

// Clear removes the credentials stored for a profile
func Clear(profile string) error {
	if err := validateProfile(profile); err != nil {
		return err
	}

	keyringErr := keyring.Delete(KeyringService, profile)
	fileErr := deleteFile(profile)

	if keyringErr != nil && !errors.Is(keyringErr, keyring.ErrNotFound) && fileErr != nil {
		return fmt.Errorf("failed to clear credentials from keyring (%v) and file (%v)", keyringErr, fileErr)
	}

	return nil
}

// validateProfile rejects names that cannot be used as a file name in the config dir
func validateProfile(profile string) error {
	if profile == "" {
		return fmt.Errorf("profile cannot be empty")
	}
	if strings.ContainsAny(profile, `/\`) || profile == "." || profile == ".." {
		return fmt.Errorf("invalid profile name %q", profile)
	}
	return nil
}

// MaskedKeyID shortens an access key ID for display
func MaskedKeyID(id string) string {
	if len(id) <= 8 {
		return strings.Repeat("*", len(id))
	}
	return id[:4] + strings.Repeat("*", len(id)-8) + id[len(id)-4:]
}

func storeInFile(profile string, data []byte) error {
	path, err := filePath(profile)
	if err != nil {
		return err
	}

	if _, err := config.EnsureConfigDir(); err != nil {
		return err
	}

	// 0600 = read/write for owner only
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	return nil
}

func loadFromFile(profile string) ([]byte, error) {
	path, err := filePath(profile)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w for profile %s", ErrNotFound, profile)
		}
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	return data, nil
}

func deleteFile(profile string) error {
	path, err := filePath(profile)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete credentials file: %w", err)
	}

	return nil
}

func filePath(profile string) (string, error) {
	if err := validateProfile(profile); err != nil {
		return "", err
	}

	dir, err := config.GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get credentials file path: %w", err)
	}

	return filepath.Join(dir, fallbackFilePrefix+profile+".yaml"), nil
}
