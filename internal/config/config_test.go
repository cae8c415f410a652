package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, "http://localhost:3000", cfg.Grafana.URL)
	require.Equal(t, "admin", cfg.Grafana.User)
	require.Empty(t, cfg.Grafana.Password)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
grafana:
  url: https://grafana.internal
  user: provisioner
  password: hunter2
  datasources:
    prometheus: http://metrics:9090
telegram:
  bot_token: "123:abc"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "https://grafana.internal", cfg.Grafana.URL)
	require.Equal(t, "provisioner", cfg.Grafana.User)
	require.Equal(t, "hunter2", cfg.Grafana.Password)
	require.Equal(t, "http://metrics:9090", cfg.Grafana.Datasources.Prometheus)
	require.Empty(t, cfg.Grafana.Datasources.Loki, "unset datasources stay empty, client applies defaults")
	require.Equal(t, "123:abc", cfg.Telegram.BotToken)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("telegram:\n  bot_token: \"123:abc\"\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:3000", cfg.Grafana.URL)
	require.Equal(t, "admin", cfg.Grafana.User)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grafana: [not a mapping"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}
