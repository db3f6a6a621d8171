package config

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required,oneof=none debug normal"`
}

type LoggingConfig struct {
	ConsoleLogger LoggerConfig `yaml:"console"`
}

// Prepare builds the console logger. Errors go to stderr, everything below
// that to stdout.
func (conf *LoggingConfig) Prepare() (*zap.Logger, error) {
	return conf.prepare(zapcore.Lock(os.Stdout), zapcore.Lock(os.Stderr))
}

func (conf *LoggingConfig) prepare(stdout, stderr zapcore.WriteSyncer) (*zap.Logger, error) {
	var lowest zapcore.Level
	switch conf.ConsoleLogger.Level {
	case "debug":
		lowest = zapcore.DebugLevel
	case "normal":
		lowest = zapcore.InfoLevel
	case "none", "":
		return zap.NewNop(), nil
	default:
		return nil, errors.Errorf("unknown console log level %q", conf.ConsoleLogger.Level)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(ec)

	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})
	lowPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lowest <= lvl && lvl < zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, stdout, lowPriority),
		zapcore.NewCore(encoder, stderr, highPriority),
	)
	return zap.New(core), nil
}
