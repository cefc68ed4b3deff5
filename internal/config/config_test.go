package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
server:
  addr: "0.0.0.0:9000"
  allowed_origins: ["https://admin.example.com"]
admin:
  username: admin
  password: hunter2
  session_secret: s3cret
mobile:
  jwt_secret: jwt-s3cret
  token_ttl: 12h
database:
  driver: postgres
  dsn: postgres://localhost/cdt
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew_file(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	cfg, err := New(Path(writeFile(t, testYAML)))
	require.NoError(err)

	assert.Equal("0.0.0.0:9000", cfg.Server.Addr)
	assert.Equal([]string{"https://admin.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal("admin", cfg.Admin.Username)
	assert.Equal("/", cfg.Admin.RedirectAfterLogin)
	assert.Equal(12*time.Hour, cfg.Mobile.TokenTTL)
	assert.Equal("cdt", cfg.Mobile.Issuer)
	assert.Equal(DriverPostgres, cfg.Database.Driver)
	assert.False(cfg.SAML.Enabled)
}

func TestNew_envOverrides(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	t.Setenv("ADMIN_PASSWORD", "from-env")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", "file::memory:")
	t.Setenv("APP_ENV", "production")

	cfg, err := New(Path(writeFile(t, testYAML)))
	require.NoError(err)

	assert.Equal("from-env", cfg.Admin.Password)
	assert.Equal(DriverSQLite, cfg.Database.Driver)
	assert.Equal("file::memory:", cfg.Database.DSN)
	assert.True(cfg.Server.Production)
}

func TestNew_missingFileUsesEnv(t *testing.T) {
	require := require.New(t)

	t.Setenv("ADMIN_USERNAME", "admin")
	t.Setenv("ADMIN_PASSWORD", "pw")
	t.Setenv("ADMIN_SESSION_SECRET", "s")
	t.Setenv("MOBILE_JWT_SECRET", "j")

	cfg, err := New(Path(filepath.Join(t.TempDir(), "nope.yaml")))
	require.NoError(err)
	require.Equal(DriverSQLite, cfg.Database.Driver)
}

func TestNew_dotenv(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	chdir(t, dir)
	// godotenv.Load sets these with os.Setenv; register them for cleanup
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_SESSION_SECRET", "")
	os.Unsetenv("ADMIN_USERNAME")
	os.Unsetenv("ADMIN_SESSION_SECRET")

	env := "ADMIN_USERNAME=admin\nADMIN_SESSION_SECRET=s\n"
	require.NoError(os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))

	t.Setenv("ADMIN_PASSWORD", "pw")
	t.Setenv("MOBILE_JWT_SECRET", "j")

	cfg, err := New("")
	require.NoError(err)
	require.Equal("admin", cfg.Admin.Username)
	require.Equal("s", cfg.Admin.SessionSecret)
}

func TestNew_malformedDotenv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BAD-KEY=value\n"), 0o600))

	_, err := New("")
	require.ErrorContains(t, err, "load .env")
}

func TestNew_malformed(t *testing.T) {
	_, err := New(Path(writeFile(t, "server: [unclosed")))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert := assert.New(t)

	cfg := Default()
	err := cfg.Validate()
	assert.ErrorContains(err, "admin.username")
	assert.ErrorContains(err, "admin.session_secret")
	assert.ErrorContains(err, "mobile.jwt_secret")

	cfg.Admin = Admin{Username: "a", PasswordHash: "$2a$...", SessionSecret: "s"}
	cfg.Mobile.JWTSecret = "j"
	assert.NoError(cfg.Validate())

	cfg.Database.Driver = "mysql"
	assert.ErrorContains(cfg.Validate(), "mysql")
	cfg.Database.Driver = DriverSQLite

	cfg.Admin.Username = "ops:admin"
	assert.ErrorContains(cfg.Validate(), "admin.username must not contain ':'")
	cfg.Admin.Username = "a"

	cfg.SAML.Enabled = true
	assert.ErrorContains(cfg.Validate(), "saml.key")
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
