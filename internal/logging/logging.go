// Package logging builds the zap logger of the mesh4d command.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	// Console receives human readable records. Defaults to os.Stderr.
	Console io.Writer
	// Verbose lowers the console level from info to debug.
	Verbose bool
	// File, if not empty, receives every record at debug level as JSON.
	// The file is appended to.
	File string
}

// New returns a logger writing to the console and optionally to a file.
// The returned function flushes and closes the log file.
func New(opts Options) (*zap.Logger, func() error, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	level := zapcore.InfoLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(zapcore.AddSync(console)), level),
	}

	closeFile := func() error { return nil }
	if opts.File != "" {
		fp, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.Lock(fp),
			zapcore.DebugLevel,
		))
		closeFile = fp.Close
	}
	logger := zap.New(zapcore.NewTee(cores...))
	cleanup := func() error {
		_ = logger.Sync()
		return closeFile()
	}
	return logger, cleanup, nil
}
