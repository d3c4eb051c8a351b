package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rauncher/rauncher/internal/app"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	dataDir := t.TempDir()
	path := writeConfigFile(t, `
log_format = "json"
data_dir = "`+dataDir+`"
cache_size_mb = 128

[download]
threads = 8

[auth]
storage = "file"
`)

	cfg, err := loadConfig(path, nil, func() []string { return nil })
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.LogFormat != app.LogFormatJSON {
		t.Errorf("LogFormat = %q, want json", cfg.LogFormat)
	}
	if cfg.Download.Threads != 8 {
		t.Errorf("Download.Threads = %d, want 8", cfg.Download.Threads)
	}
	if cfg.CacheSizeMB != 128 {
		t.Errorf("CacheSizeMB = %d, want 128", cfg.CacheSizeMB)
	}
	// Unset credential path defaults under the configured data dir
	if want := filepath.Join(dataDir, "auth.json"); cfg.Auth.File != want {
		t.Errorf("Auth.File = %q, want %q", cfg.Auth.File, want)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
log_format = "json"
data_dir = "`+t.TempDir()+`"
`)

	environ := func() []string {
		return []string{
			"RAUNCHER_LOG_FORMAT=text",
			"RAUNCHER_AUTH__KEYRING_USER=player1",
			"RAUNCHER_AUTH__STORAGE=keyring",
			"UNRELATED=ignored",
		}
	}

	cfg, err := loadConfig(path, nil, environ)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.LogFormat != app.LogFormatText {
		t.Errorf("LogFormat = %q, want text (env overrides file)", cfg.LogFormat)
	}
	if cfg.Auth.Storage != app.CredentialStorageTypeKeyring {
		t.Errorf("Auth.Storage = %q, want keyring", cfg.Auth.Storage)
	}
	if cfg.Auth.KeyringUser != "player1" {
		t.Errorf("Auth.KeyringUser = %q, want player1", cfg.Auth.KeyringUser)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := writeConfigFile(t, `
log_format = "xml"
data_dir = "`+t.TempDir()+`"
`)

	if _, err := loadConfig(path, nil, func() []string { return nil }); err == nil {
		t.Error("loadConfig with invalid log format = nil error, want error")
	}
}
