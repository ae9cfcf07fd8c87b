package log

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"
)

// Info takes a pointer subLogger struct and string sends to the sub logger
// output
func Info(sl *SubLogger, data string) {
	stage(sl, levelInfo, func() string { return data })
}

// Infof takes a pointer subLogger struct, string and interface formats
func Infof(sl *SubLogger, data string, v ...any) {
	stage(sl, levelInfo, func() string { return fmt.Sprintf(data, v...) })
}

// Debug takes a pointer subLogger struct and string
func Debug(sl *SubLogger, data string) {
	stage(sl, levelDebug, func() string { return data })
}

// Debugf takes a pointer subLogger struct, string and interface formats
func Debugf(sl *SubLogger, data string, v ...any) {
	stage(sl, levelDebug, func() string { return fmt.Sprintf(data, v...) })
}

// Warnf takes a pointer subLogger struct, string and interface formats
func Warnf(sl *SubLogger, data string, v ...any) {
	stage(sl, levelWarn, func() string { return fmt.Sprintf(data, v...) })
}

// Error takes a pointer subLogger struct and string
func Error(sl *SubLogger, data string) {
	stage(sl, levelError, func() string { return data })
}

// Errorf takes a pointer subLogger struct, string and interface formats
func Errorf(sl *SubLogger, data string, v ...any) {
	stage(sl, levelError, func() string { return fmt.Sprintf(data, v...) })
}

type level uint8

const (
	levelInfo level = iota
	levelDebug
	levelWarn
	levelError
)

func (l level) header(lg *Logger) string {
	switch l {
	case levelDebug:
		return lg.DebugHeader
	case levelWarn:
		return lg.WarnHeader
	case levelError:
		return lg.ErrorHeader
	default:
		return lg.InfoHeader
	}
}

func (l level) enabled(levels Levels) bool {
	switch l {
	case levelDebug:
		return levels.Debug
	case levelWarn:
		return levels.Warn
	case levelError:
		return levels.Error
	default:
		return levels.Info
	}
}

// stage formats and writes a log event. The message is only rendered when the
// level is enabled for the sub logger.
func stage(sl *SubLogger, lvl level, fn func() string) {
	if sl == nil {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	if !lvl.enabled(sl.Levels) || sl.output == nil {
		return
	}

	var b strings.Builder
	b.WriteString(lvl.header(&logger))
	if logger.TimestampFormat != "" {
		b.WriteString(time.Now().Format(logger.TimestampFormat))
	}
	if logger.ShowLogSystemName {
		b.WriteString(logger.Spacer)
		b.WriteString(sl.name)
	}
	b.WriteString(logger.Spacer)
	b.WriteString(fn())
	b.WriteByte('\n')
	displayError(writeTo(sl.output, b.String()))
}

func writeTo(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func displayError(err error) {
	if err != nil {
		log.Printf("Logger write error: %v\n", err)
	}
}
