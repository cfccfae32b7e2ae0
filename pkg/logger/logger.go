package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Log struct {
	LogLevel zapcore.Level `yaml:"level" envconfig:"LOG_LEVEL"`
	Sink     string        `yaml:"sink" envconfig:"LOG_SINK"`
}

// NewLogger builds a named zap logger writing to Sink (stdout when empty).
// Debug level switches to the human readable console encoder.
func NewLogger(cfg Log, name string) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if cfg.LogLevel == zapcore.DebugLevel {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	ws := zapcore.Lock(os.Stdout)
	if cfg.Sink != "" {
		sink, _, err := zap.Open(cfg.Sink)
		if err == nil {
			ws = sink
		}
	}

	core := zapcore.NewCore(enc, ws, zap.NewAtomicLevelAt(cfg.LogLevel))
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).Named(name)
}
