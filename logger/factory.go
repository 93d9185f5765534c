package logger

import (
	"io"
	"log/slog"
	"os"
)

// LoggerFactory builds loggers that share one configuration and writer.
// The CLI points it at the command's stderr; tests point it at a buffer.
type LoggerFactory struct {
	config Config
}

// NewLoggerFactory returns a factory for config. A nil writer means stderr.
func NewLoggerFactory(config Config) *LoggerFactory {
	if config.Writer == nil {
		config.Writer = os.Stderr
	}
	return &LoggerFactory{config: config}
}

// Writer is where every logger from this factory writes.
func (f *LoggerFactory) Writer() io.Writer {
	return f.config.Writer
}

// CreateLogger builds a logger, tagged with component when one is given.
func (f *LoggerFactory) CreateLogger(component string) *slog.Logger {
	l := NewLogger(f.config)
	if component != "" {
		l = l.With(Component(component))
	}
	return l
}

// Install builds an untagged logger and makes it the package-level logger.
func (f *LoggerFactory) Install() *slog.Logger {
	l := f.CreateLogger("")
	SetLogger(l)
	return l
}
