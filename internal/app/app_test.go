package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/atinyakov/SteamGuardKeeper/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_FileBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steam-desktop-guard", "config.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(`{"secrets":[{"name":"main","shared_secret":"aaaaaaaaaaaaaaaa"}]}`), 0o600))

	a, err := New(context.Background(), &config.Options{StorePath: path}, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	secrets := a.Service.Secrets()
	require.Len(t, secrets, 1)
	assert.Equal(t, "main", secrets[0].Name)
}

func TestNew_UnparsableFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o600))

	a, err := New(context.Background(), &config.Options{StorePath: path}, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, a.Service.Secrets())
	assert.NoError(t, a.Close())
}

func TestNew_BadDSN(t *testing.T) {
	_, err := New(context.Background(), &config.Options{DatabaseDSN: "postgres://guard@127.0.0.1:1/guard?sslmode=disable&connect_timeout=1"}, zap.NewNop())
	assert.ErrorContains(t, err, "init database")
}
