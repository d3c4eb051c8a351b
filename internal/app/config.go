package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/rauncher/rauncher/internal/auth"
	"github.com/rauncher/rauncher/internal/authstore"
)

// LogFormat represents the logging output format.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
	LogFormatOTLP LogFormat = "otlp"
)

// CredentialStorageType represents the storage back ends supported for the
// persisted credential.
type CredentialStorageType string

const (
	CredentialStorageTypeFile    CredentialStorageType = "file"
	CredentialStorageTypeKeyring CredentialStorageType = "keyring"
)

// Default configuration values
const (
	DefaultConfigLogFormat       = LogFormatText
	DefaultConfigAuthStorage     = CredentialStorageTypeFile
	DefaultConfigDownloadThreads = 4
	DefaultConfigCacheSizeMB     = 512

	// keyringService identifies the launcher's entries in the OS keyring.
	keyringService = "rauncher"

	// credentialFileName is the well-known credential file under the data
	// directory.
	credentialFileName = "auth.json"
)

// AuthConfig describes where the persisted credential lives.
type AuthConfig struct {
	// Storage selects the credential store backend.
	Storage CredentialStorageType `json:"storage" validate:"required,oneof=file keyring"`

	// Storage-specific settings (mutually exclusive based on Storage type)
	File        string `json:"file,omitempty"`         // for file storage: path to the credential file
	KeyringUser string `json:"keyring_user,omitempty"` // for keyring storage: user identifier
}

// NewStore creates a credential store from the authentication configuration.
func (a *AuthConfig) NewStore() (auth.Store, error) {
	switch a.Storage {
	case CredentialStorageTypeFile:
		return authstore.NewFileStore(a.File)
	case CredentialStorageTypeKeyring:
		return authstore.NewKeyringStore(keyringService, a.KeyringUser)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", a.Storage)
	}
}

// DownloadConfig holds game download behavior settings. Consumed by the
// download machinery, carried here so one file owns every launcher knob.
type DownloadConfig struct {
	Threads            int    `json:"threads" validate:"min=1"`
	BandwidthLimitKBps uint64 `json:"bandwidth_limit_kbps,omitempty"`
	CDNRegion          string `json:"cdn_region,omitempty"`
}

// Config holds the launcher's configuration.
type Config struct {
	// LogLevel for logging output (defaults to Info if unset).
	LogLevel  slog.Level `json:"log_level"`
	LogFormat LogFormat  `json:"log_format" validate:"oneof=text json otlp"`

	// DataDir is the per-user application data directory. Every fixed-path
	// artifact, the credential file included, lives beneath it.
	DataDir string `json:"data_dir"`

	InstallDir  string         `json:"install_dir"`
	AutoUpdate  bool           `json:"auto_update"`
	CacheSizeMB uint64         `json:"cache_size_mb" validate:"min=1"`
	Download    DownloadConfig `json:"download"`
	Auth        AuthConfig     `json:"auth"`
}

// Default creates a new Config with default values applied.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := cfg.ApplyDefaults(); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills unset config fields with sensible defaults.
func (c *Config) ApplyDefaults() error {
	if c.LogFormat == "" {
		c.LogFormat = DefaultConfigLogFormat
	}
	if c.DataDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("data_dir required (auto-detect failed: %w)", err)
		}
		c.DataDir = filepath.Join(configDir, "rauncher")
	}
	if c.InstallDir == "" {
		c.InstallDir = filepath.Join(c.DataDir, "games")
	}
	if c.Download.Threads == 0 {
		c.Download.Threads = DefaultConfigDownloadThreads
	}
	if c.CacheSizeMB == 0 {
		c.CacheSizeMB = DefaultConfigCacheSizeMB
	}
	if c.Auth.Storage == "" {
		c.Auth.Storage = DefaultConfigAuthStorage
	}

	// Dynamic defaults based on storage type
	switch c.Auth.Storage {
	case CredentialStorageTypeFile:
		if c.Auth.File == "" {
			c.Auth.File = filepath.Join(c.DataDir, credentialFileName)
		}
	case CredentialStorageTypeKeyring:
		if c.Auth.KeyringUser == "" {
			currentUser, err := user.Current()
			if err != nil {
				return fmt.Errorf("auth.keyring_user required (auto-detect failed: %w)", err)
			}
			c.Auth.KeyringUser = currentUser.Username
		}
	}

	return nil
}

// Validate validates the configuration using struct tags and enum values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	switch c.Auth.Storage {
	case CredentialStorageTypeFile:
		if c.Auth.File == "" {
			return errors.New("file path required for file storage")
		}
	case CredentialStorageTypeKeyring:
		if c.Auth.KeyringUser == "" {
			return errors.New("keyring_user required for keyring storage")
		}
	}

	return nil
}
