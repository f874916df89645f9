package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LUMINA_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "lumina.db", cfg.DBDSN)
	require.Equal(t, 2000, cfg.PaymentDelayMs)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumina.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9090\"\ndb_dsn: file.db\npayment_delay_ms: 10\n"), 0o644))
	t.Setenv("LUMINA_CONFIG", path)
	t.Setenv("PORT", "7070") // env wins over file

	cfg := Load()
	require.Equal(t, "7070", cfg.Port)
	require.Equal(t, "file.db", cfg.DBDSN)
	require.Equal(t, 10, cfg.PaymentDelayMs)
}

func TestLoad_MalformedFileIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumina.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [nope"), 0o644))
	t.Setenv("LUMINA_CONFIG", path)

	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
}
