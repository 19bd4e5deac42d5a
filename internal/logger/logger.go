// Package logger is a small levelled wrapper around the standard log package.
// Output goes to stderr so stdout stays reserved for command results.
package logger

import (
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// Level orders log severities; smaller is more verbose.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var (
	level atomic.Int32
	std   = log.New(os.Stderr, "", log.LstdFlags)
)

func init() {
	level.Store(int32(LevelWarn))
}

// ParseLevel maps "DEBUG", "INFO", "WARN", "ERROR" or "FATAL" (any case) to a Level.
// Unknown values fall back to LevelWarn and ok is false.
func ParseLevel(s string) (lvl Level, ok bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, true
	case "INFO":
		return LevelInfo, true
	case "WARN", "WARNING":
		return LevelWarn, true
	case "ERROR":
		return LevelError, true
	case "FATAL":
		return LevelFatal, true
	}
	return LevelWarn, false
}

// SetLogLevel sets the global level from its textual name.
func SetLogLevel(s string) {
	lvl, ok := ParseLevel(s)
	level.Store(int32(lvl))
	if !ok && s != "" {
		Warnf("unknown log level %q, using WARN", s)
	}
}

// SetLevel sets the global level.
func SetLevel(lvl Level) { level.Store(int32(lvl)) }

// CurrentLevel reports the global level.
func CurrentLevel() Level { return Level(level.Load()) }

// SetOutput redirects all log output. Tests use it to capture lines.
func SetOutput(w io.Writer) { std.SetOutput(w) }

func enabled(lvl Level) bool { return CurrentLevel() <= lvl }

func Debugf(format string, v ...any) {
	if enabled(LevelDebug) {
		std.Printf("[DEBUG] "+format, v...)
	}
}

func Infof(format string, v ...any) {
	if enabled(LevelInfo) {
		std.Printf("[INFO] "+format, v...)
	}
}

func Warnf(format string, v ...any) {
	if enabled(LevelWarn) {
		std.Printf("[WARN] "+format, v...)
	}
}

func Errorf(format string, v ...any) {
	if enabled(LevelError) {
		std.Printf("[ERROR] "+format, v...)
	}
}

// Fatalf logs and exits with status 1.
func Fatalf(format string, v ...any) {
	std.Fatalf("[FATAL] "+format, v...)
}
