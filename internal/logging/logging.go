// Package logging builds the zap logger shared by every command.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Stderr is the output path for headless commands without a log file.
const Stderr = "stderr"

// New returns a production logger at level writing to paths. With no paths
// it returns a no-op logger, which keeps the terminal UI clean.
func New(level string, paths ...string) (*zap.Logger, error) {
	if len(paths) == 0 {
		return zap.NewNop(), nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.Sampling = nil
	config.OutputPaths = paths
	config.ErrorOutputPaths = []string{Stderr}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Paths picks the output paths for a command. Logs go to file when set;
// otherwise headless commands log to stderr and the browser does not log.
func Paths(file string, headless bool) []string {
	switch {
	case file != "":
		return []string{file}
	case headless:
		return []string{Stderr}
	}
	return nil
}
