package config

import (
	"errors"
	"net/url"
	"time"

	"github.com/thrasher-corp/hitbtc/log"
)

// Constants declared here are filename strings and defaults
const (
	File           = "key.yml"
	EnvPrefix      = "HITBTC"
	DefaultLogFile = "log.txt"
	DefaultLogDir  = "logs"
)

var (
	errConfigPathEmpty = errors.New("config path is empty")
	errInvalidTimeout  = errors.New("http timeout must not be negative")
	errInvalidProxy    = errors.New("invalid proxy address")
)

// Config holds the settings read from key.yml and the environment
type Config struct {
	Key         string        `json:"key" mapstructure:"key"`
	Secret      string        `json:"secret" mapstructure:"secret"`
	Host        string        `json:"host" mapstructure:"host"`
	Version     string        `json:"version" mapstructure:"version"`
	Verbose     bool          `json:"verbose" mapstructure:"verbose"`
	HTTPTimeout time.Duration `json:"httpTimeout" mapstructure:"httpTimeout"`
	UserAgent   string        `json:"userAgent" mapstructure:"userAgent"`
	Proxy       string        `json:"proxy" mapstructure:"proxy"`
	// LogDir is the parent of a relative log file name
	LogDir  string     `json:"logDir" mapstructure:"logDir"`
	Logging log.Config `json:"logging" mapstructure:"logging"`

	proxyURL *url.URL
}
