package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logging surface the rest of the codebase depends
// on. Messages carry one structured object under the given key.
type Logger interface {
	DebugObj(msg, key string, obj any)
	InfoObj(msg, key string, obj any)
	WarnObj(msg, key string, obj any)
	ErrorObj(msg, key string, obj any)
}

// Zap implements Logger on top of a zap core.
type Zap struct {
	l *zap.Logger
}

// Init builds a JSON zap logger at the given level ("debug", "info", "warn",
// "error"; anything else falls back to info).
func Init(levelName string) (*Zap, error) {
	var level zapcore.Level
	switch levelName {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn", "warning":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(zapcore.Lock(os.Stdout)),
		level,
	)

	return &Zap{l: zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))}, nil
}

// Close flushes buffered log entries.
func (z *Zap) Close() error {
	if z == nil || z.l == nil {
		return nil
	}
	return z.l.Sync()
}

func (z *Zap) DebugObj(msg, key string, obj any) { z.l.Debug(msg, zap.Any(key, obj)) }
func (z *Zap) InfoObj(msg, key string, obj any)  { z.l.Info(msg, zap.Any(key, obj)) }
func (z *Zap) WarnObj(msg, key string, obj any)  { z.l.Warn(msg, zap.Any(key, obj)) }
func (z *Zap) ErrorObj(msg, key string, obj any) { z.l.Error(msg, zap.Any(key, obj)) }

// NopLogger discards everything. Useful as a default in constructors.
type NopLogger struct{}

func (NopLogger) DebugObj(string, string, any) {}
func (NopLogger) InfoObj(string, string, any)  {}
func (NopLogger) WarnObj(string, string, any)  {}
func (NopLogger) ErrorObj(string, string, any) {}
