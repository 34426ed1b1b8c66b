package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parseConfig(nil)
	require.NoError(t, err)

	require.Equal(t, "", cfg.DatabaseURL)
	require.Equal(t, "", cfg.DatabaseName)
	require.Equal(t, "0.0.0.0:8000", cfg.Addr())
	require.Equal(t, driverMongo, cfg.StorageDriver)
	require.Equal(t, "./data/healthyliving.db", cfg.SQLitePath)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestParseConfig_Overrides(t *testing.T) {
	cfg, err := parseConfig([]string{
		"DATABASE_URL=mongodb://localhost:27017",
		"DATABASE_NAME=healthy",
		"HOST=127.0.0.1",
		"PORT=9000",
		"STORAGE_DRIVER=sqlite",
		"SHUTDOWN_TIMEOUT=10s",
	})
	require.NoError(t, err)

	require.Equal(t, "mongodb://localhost:27017", cfg.DatabaseURL)
	require.Equal(t, "healthy", cfg.DatabaseName)
	require.Equal(t, "127.0.0.1:9000", cfg.Addr())
	require.Equal(t, driverSQLite, cfg.StorageDriver)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		environ []string
	}{
		{"unknown driver", []string{"STORAGE_DRIVER=redis"}},
		{"non-numeric port", []string{"PORT=abc"}},
		{"port out of range", []string{"PORT=70000"}},
		{"bad duration", []string{"SHUTDOWN_TIMEOUT=soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseConfig(tt.environ)
			require.Error(t, err)
		})
	}
}

func TestOpenStore_FallsBackToDisconnected(t *testing.T) {
	store := openStore(t.Context(), Config{StorageDriver: driverMongo})
	require.Equal(t, "", store.DatabaseName())
	require.Error(t, store.Ping(t.Context()))
}

func TestOpenStore_SQLite(t *testing.T) {
	store := openStore(t.Context(), Config{StorageDriver: driverSQLite, SQLitePath: t.TempDir() + "/test.db"})
	t.Cleanup(func() { store.Close(context.Background()) })

	require.NoError(t, store.Ping(t.Context()))
	require.Equal(t, "test", store.DatabaseName())
}
