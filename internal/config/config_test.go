package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, DriverMemory, cfg.DBDriver)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 30*24*time.Hour, cfg.PurgeRetention)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	chdir(t, t.TempDir())

	path := filepath.Join(t.TempDir(), "packmates.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http_port: 9000
db_driver: postgres
postgres_dsn: postgres://yaml
purge_cron: "@daily"
purge_retention: 48h
cors_origins: ["https://app.example"]
`), 0o600))

	t.Setenv("PACKMATES_POSTGRES_DSN", "postgres://env")
	t.Setenv("PACKMATES_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "postgres://env", cfg.PostgresDSN)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "@daily", cfg.PurgeCron)
	assert.Equal(t, 48*time.Hour, cfg.PurgeRetention)
	assert.Equal(t, []string{"https://app.example"}, cfg.CORSOrigins)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PACKMATES_HTTP_PORT=7070\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("PACKMATES_HTTP_PORT") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.HTTPPort)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"unknown driver":          func(c *Config) { c.DBDriver = "sqlite" },
		"postgres without dsn":    func(c *Config) { c.DBDriver = DriverPostgres },
		"mongo without uri":       func(c *Config) { c.DBDriver = DriverMongo },
		"invalid port":            func(c *Config) { c.HTTPPort = 0 },
		"purge without retention": func(c *Config) { c.PurgeCron = "@daily"; c.PurgeRetention = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(c)
			assert.Error(t, c.Validate())
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
