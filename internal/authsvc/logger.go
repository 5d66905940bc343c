package authsvc

import (
	"io"

	"github.com/pterm/pterm"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logLevels = map[string]pterm.LogLevel{
	"debug": pterm.LogLevelDebug,
	"info":  pterm.LogLevelInfo,
	"warn":  pterm.LogLevelWarn,
	"error": pterm.LogLevelError,
}

// NewLogger returns the service logger. With a log file set, JSON lines go
// to a rotated file and out is ignored. The returned closer is never nil.
func NewLogger(cfg *Config, out io.Writer) (*pterm.Logger, io.Closer) {
	level, ok := logLevels[cfg.LogLevel]
	if !ok {
		level = pterm.LogLevelInfo
	}

	if cfg.LogFile == "" {
		return pterm.DefaultLogger.WithWriter(out).WithLevel(level), io.NopCloser(nil)
	}

	file := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	logger := pterm.DefaultLogger.
		WithWriter(file).
		WithLevel(level).
		WithFormatter(pterm.LogFormatterJSON)
	return logger, file
}
