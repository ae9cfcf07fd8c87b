package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
	"github.com/thrasher-corp/hitbtc/exchanges/hitbtc"
	"github.com/thrasher-corp/hitbtc/log"
)

// envKeys are the settings that may be supplied as HITBTC_ prefixed
// environment variables
var envKeys = []string{"key", "secret", "host", "version", "verbose", "httpTimeout", "userAgent", "proxy", "logDir"}

// Load reads the YAML file at path and applies environment overrides
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errConfigPathEmpty
	}
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return decode(v)
}

// LoadFromEnv builds a configuration from environment variables alone
func LoadFromEnv() (*Config, error) {
	return decode(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for i := range envKeys {
		// BindEnv only errors without a key
		_ = v.BindEnv(envKeys[i])
	}
	v.SetDefault("host", hitbtc.DefaultHost)
	v.SetDefault("version", hitbtc.DefaultVersion)
	v.SetDefault("httpTimeout", hitbtc.DefaultHTTPTimeout)
	v.SetDefault("logDir", DefaultLogDir)
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.CheckConfig(); err != nil {
		return nil, err
	}
	return &c, nil
}

// CheckConfig validates values and fills in defaults
func (c *Config) CheckConfig() error {
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("%w: %v", errInvalidTimeout, c.HTTPTimeout)
	}
	if c.Proxy != "" {
		u, err := url.Parse(c.Proxy)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %q", errInvalidProxy, c.Proxy)
		}
		c.proxyURL = u
	}
	if c.Host == "" {
		c.Host = hitbtc.DefaultHost
	}
	if c.Version == "" {
		c.Version = hitbtc.DefaultVersion
	}
	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = hitbtc.DefaultHTTPTimeout
	}
	c.CheckLoggerConfig()
	return nil
}

// CheckLoggerConfig checks to see logger values are present and valid in config
// if not creates a default instance of the logger
func (c *Config) CheckLoggerConfig() {
	if c.Logging.Enabled == nil || c.Logging.Output == "" {
		c.Logging = log.GenDefaultSettings()
	}
	if c.Logging.LoggerFileConfig != nil {
		if c.Logging.LoggerFileConfig.FileName == "" {
			c.Logging.LoggerFileConfig.FileName = DefaultLogFile
		}
		if c.Logging.LoggerFileConfig.MaxSize <= 0 {
			log.Warnf(log.ConfigMgr, "Logger rotation size invalid, defaulting to %v", log.DefaultMaxFileSize)
			c.Logging.LoggerFileConfig.MaxSize = log.DefaultMaxFileSize
		}
	}
}

// SetupLogger applies the logging section to the global logger
func (c *Config) SetupLogger() error {
	return log.SetupGlobalLogger(&c.Logging, c.LogDir)
}

// ClientConfig returns the connection settings for a HitBTC client
func (c *Config) ClientConfig() hitbtc.Config {
	cfg := hitbtc.DefaultConfig()
	if c.Host != "" {
		cfg.Host = c.Host
	}
	if c.Version != "" {
		cfg.Version = c.Version
	}
	if c.HTTPTimeout > 0 {
		cfg.HTTPTimeout = c.HTTPTimeout
	}
	cfg.UserAgent = c.UserAgent
	cfg.Proxy = c.proxyURL
	cfg.Verbose = c.Verbose
	return cfg
}

// Credentials returns the signing credentials, or an error wrapping
// hitbtc.ErrConfiguration when the key or secret is missing or malformed
func (c *Config) Credentials() (*hitbtc.Credentials, error) {
	return hitbtc.NewCredentials(c.Key, c.Secret)
}

// HasCredentials reports whether both a key and a secret are configured
func (c *Config) HasCredentials() bool {
	return c.Key != "" && c.Secret != ""
}
