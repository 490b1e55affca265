// Package logging builds zap loggers for the CLI and HTTP server and adapts
// them to the pricing engine's Logger interface.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/sspricer/internal/calculation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the level, encoding and destination of a logger
type Options struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	OutputFile string
}

// New creates a zap logger. Level defaults to info and format to json.
func New(opts Options) (*zap.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "json"
	}

	var config zap.Config
	switch format {
	case "console":
		config = zap.NewDevelopmentConfig()
	case "json":
		config = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", opts.Format)
	}
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	if opts.OutputFile != "" {
		if dir := filepath.Dir(opts.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
			}
		}
		config.OutputPaths = []string{opts.OutputFile}
		config.ErrorOutputPaths = []string{opts.OutputFile}
	}

	return config.Build()
}

// ParseLevel maps a level name to a zap level
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", level)
	}
}

// EngineLogger routes engine messages through a sugared zap logger
type EngineLogger struct {
	sugar *zap.SugaredLogger
}

var _ calculation.Logger = (*EngineLogger)(nil)

// NewEngineLogger wraps logger, tagging every entry with op. A nil logger
// discards everything.
func NewEngineLogger(logger *zap.Logger, op string) *EngineLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EngineLogger{sugar: logger.With(zap.String("op", op)).Sugar()}
}

func (l *EngineLogger) Debugf(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *EngineLogger) Infof(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *EngineLogger) Warnf(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l *EngineLogger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }
