package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/railway-blog-service/internal/config"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const authYAML = `
auth:
  admin_password_hash: "$2a$10$0123456789012345678901"
  secret_key: 0123456789abcdef-config
`

func TestConfigLoad_PostgresFromYAMLAndEnv(t *testing.T) {
	path := writeTempConfig(t, `
app:
  name: railway-blog-service
  version: 0.1.0
  env: test
  port: 18080

logger:
  level: info
  format: json
  output_target: stdout
  time_format: rfc3339

database:
  driver: postgres

postgres:
  host: 127.0.0.1
  port: 5432
  sslmode: disable
  max_conns: 5
  min_conns: 1
`+authYAML)

	t.Setenv("APP_POSTGRES_USER", "testuser")
	t.Setenv("APP_POSTGRES_PASSWORD", "testpass")
	t.Setenv("APP_POSTGRES_DB", "testdb")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 18080, cfg.App.Port)
	assert.Equal(t, ":18080", cfg.Addr())
	assert.Equal(t, "testuser", cfg.Postgres.User)
	assert.Equal(t, "testpass", cfg.Postgres.Password)
	assert.Equal(t, "testdb", cfg.Postgres.DBName)
	assert.Equal(t, "127.0.0.1", cfg.Postgres.Host)
	assert.Equal(t, "disable", cfg.Postgres.SSLMode)
	assert.Equal(t, "test", cfg.Logger.Env, "logger env follows app env")
	assert.Equal(t, "railway-blog-service", cfg.Logger.ServiceName)
}

func TestConfigLoad_SiteAndAuthDefaults(t *testing.T) {
	cfg, err := config.Load(writeTempConfig(t, "app:\n  env: test\n"+authYAML))
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "noticias", cfg.Site.DefaultCategory)
	assert.Equal(t, 10, cfg.Site.PostsPerPage)
	assert.Equal(t, 5, cfg.Site.SearchPerPage)
	assert.Equal(t, 5, cfg.Site.RecentLimit)
	assert.Equal(t, "auth_token", cfg.Auth.CookieName)
	assert.Equal(t, 3600.0, cfg.Auth.CookieTTL().Seconds())
	assert.True(t, cfg.App.AutoMigrate)
}

func TestConfigLoad_EnvOverridesSite(t *testing.T) {
	t.Setenv("APP_SITE_POSTS_PER_PAGE", "20")
	t.Setenv("APP_DATABASE_DRIVER", "sqlite")
	t.Setenv("APP_SQLITE_PATH", "/tmp/railway.db")

	cfg, err := config.Load(writeTempConfig(t, "app:\n  env: test\n"+authYAML))
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Site.PostsPerPage)
	assert.Equal(t, "/tmp/railway.db", cfg.SQLite.Path)
}

func TestConfigLoad_Failures(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "postgres secrets missing", yaml: "app:\n  env: test\ndatabase:\n  driver: postgres\n" + authYAML},
		{name: "no admin hash", yaml: "app:\n  env: test\nauth:\n  secret_key: 0123456789abcdef-config\n"},
		{name: "short secret", yaml: "app:\n  env: test\nauth:\n  admin_password_hash: x\n  secret_key: short\n"},
		{name: "unknown driver", yaml: "app:\n  env: test\ndatabase:\n  driver: mysql\n" + authYAML},
		{name: "bad env", yaml: "app:\n  env: qa\n" + authYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_POSTGRES_USER", "")
			t.Setenv("APP_POSTGRES_PASSWORD", "")
			t.Setenv("APP_POSTGRES_DB", "")
			_, err := config.Load(writeTempConfig(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestConfigLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
