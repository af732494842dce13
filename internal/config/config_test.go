package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func parseFlags(t *testing.T, args ...string) *Options {
	t.Helper()
	o := &Options{}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	o.Register(fs)
	require.NoError(t, fs.Parse(args))
	return o
}

func TestResolve_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	o := parseFlags(t)

	require.NoError(t, o.Resolve(envMap(nil)))
	assert.Equal(t, "localhost:8080", o.Address)
	assert.Equal(t, "info", o.LogLevel)
	assert.Empty(t, o.DatabaseDSN)
	assert.Equal(t, filepath.Join("steam-desktop-guard", "config.json"),
		filepath.Join(filepath.Base(filepath.Dir(o.StorePath)), filepath.Base(o.StorePath)))
}

func TestResolve_Precedence(t *testing.T) {
	dir := t.TempDir()
	settings := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(settings, []byte(`{
		"store_path": "/from/file.json",
		"server_address": "127.0.0.1:9000",
		"log_level": "debug"
	}`), 0o600))

	o := parseFlags(t, "-a", "0.0.0.0:1", "-s", "/from/flag.json", "-c", settings)
	env := envMap(map[string]string{"LOG_LEVEL": "warn", "DATABASE_DSN": "postgres://x"})

	require.NoError(t, o.Resolve(env))
	assert.Equal(t, "/from/file.json", o.StorePath, "settings file overrides flags")
	assert.Equal(t, "127.0.0.1:9000", o.Address)
	assert.Equal(t, "warn", o.LogLevel, "environment overrides settings file")
	assert.Equal(t, "postgres://x", o.DatabaseDSN)
}

func TestResolve_ConfigFromEnv(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(settings, []byte(`{"store_path": "/env/file.json"}`), 0o600))

	o := parseFlags(t)
	require.NoError(t, o.Resolve(envMap(map[string]string{"CONFIG": settings})))
	assert.Equal(t, "/env/file.json", o.StorePath)
}

func TestResolve_MissingSettingsFileIgnored(t *testing.T) {
	o := parseFlags(t, "-s", "/x.json", "-config", filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, o.Resolve(envMap(nil)))
	assert.Equal(t, "/x.json", o.StorePath)
}

func TestResolve_BadSettingsFile(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(settings, []byte(`{not json`), 0o600))

	o := parseFlags(t, "-c", settings)
	err := o.Resolve(envMap(nil))
	assert.ErrorContains(t, err, "error while parsing config file")
}
