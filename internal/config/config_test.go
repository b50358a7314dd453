package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "", cfg.Database.URL)
	assert.Equal(t, 10, cfg.Database.MaxConnections)
	assert.Equal(t, 30*time.Second, cfg.Database.StatementTimeout)
	assert.Equal(t, ProviderLog, cfg.Email.Provider)
	assert.Equal(t, "card", cfg.Email.Layout)
	assert.NotEmpty(t, cfg.Local.Path)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskdeck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  url: postgres://deck:pw@localhost:5432/deck?sslmode=disable
  statement_timeout: 5s
local:
  path: /tmp/deck.db
email:
  provider: resend
  from: deck@example.com
  to: [me@example.com]
  resend_api_key: re_123
  layout: minimal
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://deck:pw@localhost:5432/deck?sslmode=disable", cfg.Database.URL)
	assert.Equal(t, 5*time.Second, cfg.Database.StatementTimeout)
	assert.Equal(t, 10, cfg.Database.MaxConnections)
	assert.Equal(t, "/tmp/deck.db", cfg.Local.Path)
	assert.Equal(t, []string{"me@example.com"}, cfg.Email.To)
	assert.Equal(t, "minimal", cfg.Email.Layout)
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("database: ["), 0600))
	_, err := Load(bad)
	assert.ErrorContains(t, err, "failed to parse config file")

	noKey := filepath.Join(dir, "nokey.yaml")
	require.NoError(t, os.WriteFile(noKey, []byte("email:\n  provider: resend\n"), 0600))
	_, err = Load(noKey)
	assert.ErrorContains(t, err, "resend_api_key")

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoadWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TASKDECK_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestGetConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	t.Setenv("TASKDECK_CONFIG", "/etc/taskdeck.yaml")
	assert.Equal(t, "/etc/taskdeck.yaml", GetConfigPath())

	t.Setenv("TASKDECK_CONFIG", "")
	assert.Equal(t, "", GetConfigPath())

	require.NoError(t, os.WriteFile(".taskdeck.yml", []byte("version: \"1\"\n"), 0600))
	assert.Equal(t, ".taskdeck.yml", GetConfigPath())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "taskdeck.yaml")
	cfg := Default()
	cfg.Database.URL = "postgres://localhost/deck"
	cfg.Email.To = []string{"a@example.com", "b@example.com"}

	require.NoError(t, Save(cfg, path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
