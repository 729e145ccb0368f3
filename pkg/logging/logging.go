// Package logging adapts github.com/baditaflorin/l to the small Logger
// interface used across pepcomb.
package logging

import (
	"io"
	"os"

	"github.com/baditaflorin/l"
)

// Logger is a structured key/value logger.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Close() error
}

// Options configures New.
type Options struct {
	Output  io.Writer // defaults to os.Stderr
	JSON    bool
	Verbose bool // emit Debug messages
}

// StdLogger wraps an l.Logger.
type StdLogger struct {
	logger  l.Logger
	verbose bool
}

// New creates a synchronous logger.
func New(opts Options) (*StdLogger, error) {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}

	logger, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:     opts.Output,
		JsonFormat: opts.JSON,
		AsyncWrite: false,
		AddSource:  opts.Verbose,
	})
	if err != nil {
		return nil, err
	}

	return &StdLogger{logger: logger, verbose: opts.Verbose}, nil
}

// Debug logs a debug message when verbose output is on.
func (s *StdLogger) Debug(msg string, keysAndValues ...interface{}) {
	if !s.verbose {
		return
	}
	s.logger.Debug(msg, keysAndValues...)
}

// Info logs an info message.
func (s *StdLogger) Info(msg string, keysAndValues ...interface{}) {
	s.logger.Info(msg, keysAndValues...)
}

// Warn logs a warning message.
func (s *StdLogger) Warn(msg string, keysAndValues ...interface{}) {
	s.logger.Warn(msg, keysAndValues...)
}

// Error logs an error message.
func (s *StdLogger) Error(msg string, keysAndValues ...interface{}) {
	s.logger.Error(msg, keysAndValues...)
}

// Close flushes and closes the underlying logger.
func (s *StdLogger) Close() error {
	return s.logger.Close()
}

type nop struct{}

func (nop) Debug(string, ...interface{}) {}
func (nop) Info(string, ...interface{})  {}
func (nop) Warn(string, ...interface{})  {}
func (nop) Error(string, ...interface{}) {}
func (nop) Close() error                 { return nil }

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nop{}
}
