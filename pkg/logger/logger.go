package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

//go:generate mockgen -destination=../../internal/domain/mocks/mock_logger.go -package=mocks github.com/Notifuse/emailcomposer/pkg/logger Logger

type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Fatal(msg string)
	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
}

type zerologLogger struct {
	logger zerolog.Logger
}

// NewLogger creates a JSON logger writing to stdout at debug level
func NewLogger() Logger {
	return NewLoggerWithWriter(os.Stdout, "debug")
}

// NewLoggerWithLevel creates a stdout logger filtered at the given level.
// Unknown levels fall back to info.
func NewLoggerWithLevel(level string) Logger {
	return NewLoggerWithWriter(os.Stdout, level)
}

// NewLoggerWithWriter creates a logger writing to w
func NewLoggerWithWriter(w io.Writer, level string) Logger {
	logger := zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger()
	return &zerologLogger{
		logger: logger,
	}
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *zerologLogger) Debug(msg string) {
	l.logger.Debug().Msg(msg)
}

func (l *zerologLogger) Info(msg string) {
	l.logger.Info().Msg(msg)
}

func (l *zerologLogger) Warn(msg string) {
	l.logger.Warn().Msg(msg)
}

func (l *zerologLogger) Error(msg string) {
	l.logger.Error().Msg(msg)
}

func (l *zerologLogger) Fatal(msg string) {
	l.logger.Fatal().Msg(msg)
}

func (l *zerologLogger) WithField(key string, value interface{}) Logger {
	return &zerologLogger{
		logger: l.logger.With().Interface(key, value).Logger(),
	}
}

func (l *zerologLogger) WithFields(fields map[string]interface{}) Logger {
	ctx := l.logger.With()
	for key, value := range fields {
		ctx = ctx.Interface(key, value)
	}
	return &zerologLogger{
		logger: ctx.Logger(),
	}
}
