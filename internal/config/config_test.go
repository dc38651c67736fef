package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "sqlite", cfg.DB.Driver)
	require.Equal(t, "openhouse.db", cfg.DB.Path)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.Equal(t, "https://api.openai.com/v1", cfg.OpenAI.BaseURL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("OPENHOUSE_SERVER_PORT", "9090")
	t.Setenv("OPENHOUSE_DB_DRIVER", "firestore")
	t.Setenv("OPENHOUSE_FIRESTORE_PROJECT", "openhouse-prod")
	t.Setenv("OPENAI_MODEL", "gpt-4o")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "firestore", cfg.DB.Driver)
	require.Equal(t, "openhouse-prod", cfg.DB.ProjectID)
	require.Equal(t, "gpt-4o", cfg.OpenAI.Model)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 7070
log:
  level: debug
`), 0o644))
	t.Setenv("OPENHOUSE_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 7070, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsBadDriver(t *testing.T) {
	t.Setenv("OPENHOUSE_DB_DRIVER", "mongodb")
	_, err := Load()
	require.Error(t, err)
}

func TestLoadFirestoreRequiresProject(t *testing.T) {
	t.Setenv("OPENHOUSE_DB_DRIVER", "firestore")
	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("OPENHOUSE_SERVER_PORT", "not-a-port")
	_, err := Load()
	require.Error(t, err)
}
