package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Production config with a readable time
// format; logs go to stderr.
func New() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := cfg.Build()
	if err != nil {
		// zap's production config only fails on bad output paths; fall
		// back to the no-op logger rather than crash before logging works.
		return zap.NewNop()
	}
	return logger
}
