// Package logging builds the zap logger shared by the CLI and the command service.
package logging

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelOff disables logging entirely.
const LevelOff = "off"

// New returns a logger writing to w at the given level ("debug", "info",
// "warn", "error" or "off") using a "console" or "json" encoder.
func New(level, format string, w io.Writer) (*zap.Logger, error) {
	if strings.EqualFold(level, LevelOff) {
		return zap.NewNop(), nil
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	var enc zapcore.Encoder
	switch strings.ToLower(format) {
	case "", "console":
		enc = zapcore.NewConsoleEncoder(encCfg)
	case "json":
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return nil, fmt.Errorf("logging: unknown format %q", format)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), zap.NewAtomicLevelAt(lvl))
	return zap.New(core), nil
}

// ValidLevel reports whether level is accepted by New.
func ValidLevel(level string) bool {
	if strings.EqualFold(level, LevelOff) {
		return true
	}
	_, err := zapcore.ParseLevel(level)
	return err == nil
}
