// Package logging provides the process-wide slog logger, its rotating file
// output and the HTTP access log middleware.
package logging

import (
	"log/slog"
	"os"
)

type LoggingService struct {
	Logger  *slog.Logger
	Rotator *RotatingLogger
}

var DefaultLoggingService *LoggingService

// InitLogger initializes the global logger with default options.
// An empty logDir logs to the console only.
func InitLogger(logDir string) {
	InitLoggerWithOptions(Options{Dir: logDir, Level: slog.LevelInfo})
}

// InitLoggerWithOptions initializes the global logger and sets it as the slog default
func InitLoggerWithOptions(opts Options) {
	logger, rotator := SetupLogger(opts)
	DefaultLoggingService = &LoggingService{
		Logger:  logger,
		Rotator: rotator,
	}
	slog.SetDefault(logger)
}

// Close flushes and closes the log file, if any
func Close() error {
	if DefaultLoggingService == nil || DefaultLoggingService.Rotator == nil {
		return nil
	}
	return DefaultLoggingService.Rotator.Close()
}

// GetLogger returns the global logger, or a console logger before InitLogger
func GetLogger() *slog.Logger {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		return fallbackLogger(slog.LevelDebug)
	}
	return DefaultLoggingService.Logger
}

func fallbackLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// Package-level functions for direct access

func Info(msg string, args ...any) {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		fallbackLogger(slog.LevelInfo).Info(msg, args...)
		return
	}
	DefaultLoggingService.Logger.Info(msg, args...)
}

func Error(msg string, args ...any) {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		fallbackLogger(slog.LevelError).Error(msg, args...)
		return
	}
	DefaultLoggingService.Logger.Error(msg, args...)
}

func Warn(msg string, args ...any) {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		fallbackLogger(slog.LevelWarn).Warn(msg, args...)
		return
	}
	DefaultLoggingService.Logger.Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		fallbackLogger(slog.LevelDebug).Debug(msg, args...)
		return
	}
	DefaultLoggingService.Logger.Debug(msg, args...)
}
