package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Level is a log severity level
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
	LevelPanic
)

var (
	mu       sync.RWMutex
	current  = LevelInfo
	output   = log.New(os.Stderr, "", log.LstdFlags)
	fileSink *os.File
)

// ParseLevel parses a level name into a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	case "panic":
		return LevelPanic, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level: %q", s)
	}
}

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	case LevelPanic:
		return "PANIC"
	default:
		return "UNKNOWN"
	}
}

// SetLevel sets the minimum level that gets logged
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	current = l
}

// SetFile mirrors log output to the given file path in addition to stderr.
// An empty path disables the file sink.
func SetFile(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if fileSink != nil {
		_ = fileSink.Close()
		fileSink = nil
		output = log.New(os.Stderr, "", log.LstdFlags)
	}
	if path == "" {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	fileSink = f
	output = log.New(multiWriter{os.Stderr, f}, "", log.LstdFlags)
	return nil
}

type multiWriter []interface{ Write([]byte) (int, error) }

func (m multiWriter) Write(p []byte) (int, error) {
	for _, w := range m {
		_, _ = w.Write(p)
	}
	return len(p), nil
}

func logAt(l Level, format string, args ...any) {
	mu.RLock()
	enabled := l >= current
	out := output
	mu.RUnlock()
	if !enabled {
		return
	}
	out.Printf("["+l.String()+"] "+format, args...)
}

func Trace(format string, args ...any) { logAt(LevelTrace, format, args...) }
func Debug(format string, args ...any) { logAt(LevelDebug, format, args...) }
func Info(format string, args ...any)  { logAt(LevelInfo, format, args...) }
func Warn(format string, args ...any)  { logAt(LevelWarn, format, args...) }
func Error(format string, args ...any) { logAt(LevelError, format, args...) }

// Fatal logs and exits with status 1
func Fatal(format string, args ...any) {
	logAt(LevelFatal, format, args...)
	os.Exit(1)
}
