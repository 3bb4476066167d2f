package logger

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// New builds a console logger writing to out. The CLI passes stderr, since
// stdout is reserved for the account table.
func New(level string, out io.Writer) (*zap.Logger, error) {
	atomic, err := resolveLevel(level)
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	sink := zapcore.AddSync(out)
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), sink, atomic)
	return zap.New(core, zap.AddCaller(), zap.ErrorOutput(sink)), nil
}

func resolveLevel(level string) (zap.AtomicLevel, error) {
	if strings.TrimSpace(level) == "" {
		level = DefaultLevel
	}

	var parsed zapcore.Level
	if err := parsed.Set(strings.TrimSpace(level)); err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zap.NewAtomicLevelAt(parsed), nil
}
