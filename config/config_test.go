package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/hitbtc/exchanges/hitbtc"
	"github.com/thrasher-corp/hitbtc/log"
)

const testConfig = `key: abc
secret: dGVzdHNlY3JldA==
host: api.demo.hitbtc.com
httpTimeout: 30s
verbose: true
logging:
  enabled: true
  level: INFO|WARN|DEBUG|ERROR
  output: console
  fileSettings:
    filename: hitbtc.log
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), File)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()
	c, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err, "Load must not error")
	assert.Equal(t, "abc", c.Key)
	assert.Equal(t, "dGVzdHNlY3JldA==", c.Secret)
	assert.Equal(t, "api.demo.hitbtc.com", c.Host)
	assert.Equal(t, hitbtc.DefaultVersion, c.Version, "version should default")
	assert.Equal(t, 30*time.Second, c.HTTPTimeout)
	assert.True(t, c.Verbose)
	assert.Equal(t, DefaultLogDir, c.LogDir)

	require.NotNil(t, c.Logging.Enabled)
	assert.True(t, *c.Logging.Enabled)
	assert.Equal(t, "INFO|WARN|DEBUG|ERROR", c.Logging.Level)
	require.NotNil(t, c.Logging.LoggerFileConfig)
	assert.Equal(t, "hitbtc.log", c.Logging.LoggerFileConfig.FileName)
	assert.Equal(t, log.DefaultMaxFileSize, c.Logging.LoggerFileConfig.MaxSize, "rotation size should default")
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()
	_, err := Load("")
	assert.ErrorIs(t, err, errConfigPathEmpty)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "key: abc\nhttpTimeout: -1s\n"))
	assert.ErrorIs(t, err, errInvalidTimeout)

	_, err = Load(writeConfig(t, "proxy: 127.0.0.1\n"))
	assert.ErrorIs(t, err, errInvalidProxy)

	_, err = Load(writeConfig(t, "key: [abc\n"))
	assert.Error(t, err, "malformed YAML must error")
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HITBTC_KEY", "fromenv")
	t.Setenv("HITBTC_HTTPTIMEOUT", "5s")
	c, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)
	assert.Equal(t, "fromenv", c.Key)
	assert.Equal(t, 5*time.Second, c.HTTPTimeout)
	assert.Equal(t, "api.demo.hitbtc.com", c.Host)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HITBTC_KEY", "abc")
	t.Setenv("HITBTC_SECRET", "dGVzdHNlY3JldA==")
	t.Setenv("HITBTC_VERBOSE", "true")
	c, err := LoadFromEnv()
	require.NoError(t, err)
	assert.True(t, c.HasCredentials())
	assert.True(t, c.Verbose)
	assert.Equal(t, hitbtc.DefaultHost, c.Host)
	assert.Equal(t, hitbtc.DefaultHTTPTimeout, c.HTTPTimeout)
	assert.Equal(t, log.GenDefaultSettings().Level, c.Logging.Level, "logging should fall back to defaults")
}

func TestClientConfig(t *testing.T) {
	t.Parallel()
	c := &Config{Host: "api.demo.hitbtc.com", HTTPTimeout: time.Second, UserAgent: "cli", Verbose: true}
	cfg := c.ClientConfig()
	assert.Equal(t, "api.demo.hitbtc.com", cfg.Host)
	assert.Equal(t, hitbtc.DefaultVersion, cfg.Version)
	assert.Equal(t, time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "cli", cfg.UserAgent)
	assert.True(t, cfg.Verbose)

	c = &Config{Proxy: "http://127.0.0.1:3128"}
	require.NoError(t, c.CheckConfig())
	cfg = c.ClientConfig()
	require.NotNil(t, cfg.Proxy)
	assert.Equal(t, "127.0.0.1:3128", cfg.Proxy.Host)

	cfg = (&Config{}).ClientConfig()
	assert.Equal(t, hitbtc.DefaultConfig(), cfg)
}

func TestCredentials(t *testing.T) {
	t.Parallel()
	c := &Config{Key: "abc", Secret: "dGVzdHNlY3JldA=="}
	creds, err := c.Credentials()
	require.NoError(t, err)
	assert.Equal(t, "abc", creds.APIKey)

	_, err = (&Config{Key: "abc"}).Credentials()
	assert.ErrorIs(t, err, hitbtc.ErrConfiguration)
	assert.False(t, (&Config{Key: "abc"}).HasCredentials())

	_, err = (&Config{Key: "abc", Secret: "not base64!"}).Credentials()
	assert.ErrorIs(t, err, hitbtc.ErrConfiguration)
}
