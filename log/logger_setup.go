package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	errSubloggerConfigIsNil  = errors.New("sublogger config is nil")
	errUnhandledOutputWriter = errors.New("unhandled output writer")
	errFileLoggingNotSetup   = errors.New("file output requested but file logging is not configured")
	errSubLoggerNotFound     = errors.New("sub logger not found")
)

func getWriters(s *SubLoggerConfig) (io.Writer, error) {
	if s == nil {
		return nil, errSubloggerConfigIsNil
	}
	var writers []io.Writer
	outputWriters := strings.Split(s.Output, "|")
	for x := range outputWriters {
		switch strings.ToLower(strings.TrimSpace(outputWriters[x])) {
		case "stdout", "console":
			writers = append(writers, os.Stdout)
		case "stderr":
			writers = append(writers, os.Stderr)
		case "file":
			if globalLogFile == nil {
				return nil, errFileLoggingNotSetup
			}
			writers = append(writers, globalLogFile)
		default:
			return nil, fmt.Errorf("%w: %s", errUnhandledOutputWriter, outputWriters[x])
		}
	}
	if len(writers) == 1 {
		return writers[0], nil
	}
	return io.MultiWriter(writers...), nil
}

func boolPtr(b bool) *bool { return &b }

// GenDefaultSettings return struct with known sane/working logger settings
func GenDefaultSettings() Config {
	return Config{
		Enabled: boolPtr(true),
		SubLoggerConfig: SubLoggerConfig{
			Level:  "INFO|WARN|ERROR",
			Output: "console",
		},
		AdvancedSettings: AdvancedSettings{
			ShowLogSystemName: boolPtr(true),
			Spacer:            spacer,
			TimeStampFormat:   timestampFormat,
			Headers: Headers{
				Info:  "[INFO]",
				Warn:  "[WARN]",
				Debug: "[DEBUG]",
				Error: "[ERROR]",
			},
		},
	}
}

// SetupGlobalLogger applies the supplied configuration to every registered
// sub logger. logDir is used as the parent directory of a relative log file
// name.
func SetupGlobalLogger(cfg *Config, logDir string) error {
	if cfg == nil {
		return errSubloggerConfigIsNil
	}
	mu.Lock()
	defer mu.Unlock()

	globalLogFile = nil
	if cfg.LoggerFileConfig != nil && cfg.LoggerFileConfig.FileName != "" {
		name := cfg.LoggerFileConfig.FileName
		if !filepath.IsAbs(name) && logDir != "" {
			name = filepath.Join(logDir, name)
		}
		maxSize := cfg.LoggerFileConfig.MaxSize
		if maxSize <= 0 {
			maxSize = DefaultMaxFileSize
		}
		globalLogFile = &lumberjack.Logger{
			Filename:   name,
			MaxSize:    maxSize,
			MaxBackups: cfg.LoggerFileConfig.MaxBackups,
			Compress:   cfg.LoggerFileConfig.Compress,
		}
	}

	enabled := cfg.Enabled == nil || *cfg.Enabled
	for _, sl := range subLoggers {
		if !enabled {
			sl.Levels = Levels{}
			continue
		}
		output, err := getWriters(&cfg.SubLoggerConfig)
		if err != nil {
			return err
		}
		sl.output = output
		sl.Levels = splitLevel(cfg.Level)
	}

	if enabled {
		for x := range cfg.SubLoggers {
			output, err := getWriters(&cfg.SubLoggers[x])
			if err != nil {
				return err
			}
			if err := configureSubLogger(cfg.SubLoggers[x].Name, cfg.SubLoggers[x].Level, output); err != nil {
				return err
			}
		}
	}

	globalLogConfig = *cfg
	logger = newLogger(cfg)
	return nil
}

// SetOutput redirects a sub logger, used by tests and embedders that want to
// capture output
func SetOutput(sl *SubLogger, w io.Writer) {
	mu.Lock()
	sl.output = w
	mu.Unlock()
}

// SetLevels replaces the enabled levels of a sub logger using the
// "INFO|WARN|DEBUG|ERROR" notation
func SetLevels(sl *SubLogger, levels string) {
	mu.Lock()
	sl.Levels = splitLevel(levels)
	mu.Unlock()
}

func newLogger(c *Config) Logger {
	return Logger{
		TimestampFormat:   c.AdvancedSettings.TimeStampFormat,
		Spacer:            c.AdvancedSettings.Spacer,
		ErrorHeader:       c.AdvancedSettings.Headers.Error,
		InfoHeader:        c.AdvancedSettings.Headers.Info,
		WarnHeader:        c.AdvancedSettings.Headers.Warn,
		DebugHeader:       c.AdvancedSettings.Headers.Debug,
		ShowLogSystemName: c.AdvancedSettings.ShowLogSystemName != nil && *c.AdvancedSettings.ShowLogSystemName,
	}
}

func configureSubLogger(subLogger, levels string, output io.Writer) error {
	logPtr, found := subLoggers[strings.ToUpper(subLogger)]
	if !found {
		return fmt.Errorf("%w: %v", errSubLoggerNotFound, subLogger)
	}
	logPtr.output = output
	logPtr.Levels = splitLevel(levels)
	return nil
}

func splitLevel(level string) (l Levels) {
	enabledLevels := strings.Split(level, "|")
	for x := range enabledLevels {
		switch strings.ToUpper(strings.TrimSpace(enabledLevels[x])) {
		case "DEBUG":
			l.Debug = true
		case "INFO":
			l.Info = true
		case "WARN":
			l.Warn = true
		case "ERROR":
			l.Error = true
		}
	}
	return
}

func registerNewSubLogger(subLogger string) *SubLogger {
	temp := &SubLogger{
		name:   strings.ToUpper(subLogger),
		output: os.Stdout,
		Levels: splitLevel(globalLogConfig.Level),
	}
	subLoggers[temp.name] = temp
	return temp
}

// register all loggers at package init()
func init() {
	logger = newLogger(&globalLogConfig)

	Global = registerNewSubLogger("LOG")
	ConfigMgr = registerNewSubLogger("CONFIG")
	RequestSys = registerNewSubLogger("REQUESTER")
	ExchangeSys = registerNewSubLogger("EXCHANGE")
}
