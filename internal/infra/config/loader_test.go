package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/jira-attach/internal/domain"
	"github.com/runoshun/jira-attach/internal/infra/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, domain.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path, domain.KeyPath(dir)
}

func TestLoader_Load_Defaults(t *testing.T) {
	// Setup
	dir := t.TempDir()
	loader := NewLoaderWithEnv(filepath.Join(dir, domain.ConfigFileName), domain.KeyPath(dir), nil)

	// Execute
	cfg, err := loader.Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.NewDefaultConfig(), cfg)
}

func TestLoader_Load_File(t *testing.T) {
	// Setup
	path, keyPath := writeConfig(t, `
[server]
url = "https://jira.example.com/"
username = "alice"
password = "plain"
insecure = true
max_retries = 2
rate_limit = 5.5
timeout = "10s"

[viewer]
command = "feh"

[list]
sort = "size"
desc = true

[log]
level = "debug"
`)
	loader := NewLoaderWithEnv(path, keyPath, nil)

	// Execute
	cfg, err := loader.Load()

	// Assert
	require.NoError(t, err)
	assert.Empty(t, cfg.Warnings)
	assert.Equal(t, "https://jira.example.com/", cfg.Server.URL)
	assert.Equal(t, "alice", cfg.Server.Username)
	assert.Equal(t, "plain", cfg.Server.Password)
	assert.True(t, cfg.Server.Insecure)
	assert.Equal(t, 2, cfg.Server.MaxRetries)
	assert.InDelta(t, 5.5, cfg.Server.RateLimit, 0.001)
	assert.Equal(t, "feh", cfg.Viewer.Command)
	assert.Equal(t, "size", cfg.List.Sort)
	assert.True(t, cfg.List.Desc)
	assert.Equal(t, "debug", cfg.Log.Level)

	p := cfg.Profile()
	assert.Equal(t, "https://jira.example.com", p.Server)
	assert.Equal(t, "10s", p.Timeout.String())
}

func TestLoader_Load_UnknownKeysWarn(t *testing.T) {
	path, keyPath := writeConfig(t, `
[server]
url = "https://jira.example.com"
verify = false

[colors]
accent = "red"
`)
	cfg, err := NewLoaderWithEnv(path, keyPath, nil).Load()

	require.NoError(t, err)
	assert.Equal(t, []string{
		"unknown key in [server]: verify",
		"unknown section: colors",
	}, cfg.Warnings)
	assert.Equal(t, "https://jira.example.com", cfg.Server.URL)
}

func TestLoader_Load_InvalidTOML(t *testing.T) {
	path, keyPath := writeConfig(t, "[server\nurl=")

	_, err := NewLoaderWithEnv(path, keyPath, nil).Load()

	assert.Error(t, err)
}

func TestLoader_Load_EnvOverrides(t *testing.T) {
	// Setup
	path, keyPath := writeConfig(t, `
[server]
url = "https://file.example.com"
username = "file-user"

[log]
level = "info"
`)
	loader := NewLoaderWithEnv(path, keyPath, map[string]string{
		"JIRA_ATTACH_SERVER":    "https://env.example.com",
		"JIRA_ATTACH_PASSWORD":  "env-pass",
		"JIRA_ATTACH_INSECURE":  "true",
		"JIRA_ATTACH_LOG_LEVEL": "warn",
		"UNRELATED":             "x",
	})

	// Execute
	cfg, err := loader.Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.Server.URL)
	assert.Equal(t, "file-user", cfg.Server.Username)
	assert.Equal(t, "env-pass", cfg.Server.Password)
	assert.True(t, cfg.Server.Insecure)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoader_Load_InvalidEnvBool(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoaderWithEnv(filepath.Join(dir, "missing.toml"), domain.KeyPath(dir), map[string]string{
		"JIRA_ATTACH_INSECURE": "maybe",
	})

	_, err := loader.Load()

	assert.ErrorContains(t, err, "JIRA_ATTACH_INSECURE")
}

func TestLoader_Load_SealedPassword(t *testing.T) {
	// Setup
	dir := t.TempDir()
	keyPath := domain.KeyPath(dir)
	enc, err := crypto.LoadOrCreate(keyPath)
	require.NoError(t, err)
	sealed, err := enc.Seal("s3cret")
	require.NoError(t, err)

	path := filepath.Join(dir, domain.ConfigFileName)
	content := "[server]\nurl = \"https://jira.example.com\"\npassword = \"" + sealed + "\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// Execute
	cfg, err := NewLoaderWithEnv(path, keyPath, nil).Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Server.Password)
}

func TestLoader_Load_SealedPasswordWithoutKey(t *testing.T) {
	dir := t.TempDir()
	enc, err := crypto.LoadOrCreate(filepath.Join(t.TempDir(), "other.key"))
	require.NoError(t, err)
	sealed, err := enc.Seal("s3cret")
	require.NoError(t, err)
	path := filepath.Join(dir, domain.ConfigFileName)
	content := "[server]\npassword = \"" + sealed + "\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	keyPath := domain.KeyPath(dir)

	_, err = NewLoaderWithEnv(path, keyPath, nil).Load()

	assert.ErrorIs(t, err, crypto.ErrKeyNotFound)
	assert.NoFileExists(t, keyPath, "loading must not create a key")
}

