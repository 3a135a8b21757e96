package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the logging interface used across handlewatch components.
type Logger interface {
	Info(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
	Debug(msg string, fields ...Field)
	Printf(format string, args ...any)
	Println(args ...any)
}

// Field is a structured key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an int field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Int64 creates an int64 field.
func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

// Uint64 creates a uint64 field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a float64 field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Duration creates a time.Duration field.
func Duration(key string, value time.Duration) Field { return Field{Key: key, Value: value} }

// Err creates a field holding an error under the "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// ZerologAdapter implements Logger on top of zerolog.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog.Logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewDefaultLogger returns a timestamped zerolog logger writing to stderr.
func NewDefaultLogger() *ZerologAdapter {
	return NewZerologAdapter(zerolog.New(os.Stderr).With().Timestamp().Logger())
}

// NewLogger returns a zerolog-backed logger writing to w, tagged with a
// component field.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	return NewZerologAdapter(zerolog.New(w).With().Timestamp().Str("component", component).Logger())
}

// Info logs at info level.
func (a *ZerologAdapter) Info(msg string, fields ...Field) {
	applyFields(a.logger.Info(), fields).Msg(msg)
}

// Error logs at error level. A nil err is logged as a null error field.
func (a *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	applyFields(a.logger.Error().Err(err), fields).Msg(msg)
}

// Debug logs at debug level.
func (a *ZerologAdapter) Debug(msg string, fields ...Field) {
	applyFields(a.logger.Debug(), fields).Msg(msg)
}

// Printf logs a formatted message at info level.
func (a *ZerologAdapter) Printf(format string, args ...any) {
	a.logger.Info().Msgf(format, args...)
}

// Println logs its arguments at info level, space separated.
func (a *ZerologAdapter) Println(args ...any) {
	a.logger.Info().Msg(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

func applyFields(e *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			e = e.Str(f.Key, v)
		case int:
			e = e.Int(f.Key, v)
		case int32:
			e = e.Int32(f.Key, v)
		case int64:
			e = e.Int64(f.Key, v)
		case uint64:
			e = e.Uint64(f.Key, v)
		case float64:
			e = e.Float64(f.Key, v)
		case bool:
			e = e.Bool(f.Key, v)
		case time.Duration:
			e = e.Dur(f.Key, v)
		case error:
			e = e.AnErr(f.Key, v)
		default:
			e = e.Interface(f.Key, v)
		}
	}
	return e
}

// StdLoggerAdapter implements Logger on top of the standard library logger.
type StdLoggerAdapter struct {
	logger *log.Logger
}

// NewStdLoggerAdapter wraps a *log.Logger.
func NewStdLoggerAdapter(logger *log.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: logger}
}

// Info logs with an [INFO] prefix.
func (a *StdLoggerAdapter) Info(msg string, fields ...Field) {
	a.logger.Printf("[INFO] %s%s", msg, formatFields(fields))
}

// Error logs with an [ERROR] prefix.
func (a *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	a.logger.Printf("[ERROR] %s: %v%s", msg, err, formatFields(fields))
}

// Debug logs with a [DEBUG] prefix.
func (a *StdLoggerAdapter) Debug(msg string, fields ...Field) {
	a.logger.Printf("[DEBUG] %s%s", msg, formatFields(fields))
}

// Printf logs a formatted message.
func (a *StdLoggerAdapter) Printf(format string, args ...any) {
	a.logger.Printf(format, args...)
}

// Println logs its arguments.
func (a *StdLoggerAdapter) Println(args ...any) {
	a.logger.Println(args...)
}

func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}

// ParseLevel converts a level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// Nop returns a logger that discards everything.
func Nop() *ZerologAdapter {
	return NewZerologAdapter(zerolog.Nop())
}
