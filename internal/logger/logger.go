// Package logger builds the zap logger used by the demo program.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config describes where log output goes.
type Config struct {
	Level      string `yaml:"level"`       // debug, info, warn, error
	OutputPath string `yaml:"output_path"` // log file; empty disables the file sink
	MaxSize    int    `yaml:"max_size"`    // megabytes per file
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"` // days
	Compress   bool   `yaml:"compress"`
	// Console writes to stderr. Leave it off while the UI owns the
	// terminal.
	Console bool `yaml:"console"`
}

func DefaultConfig() Config {
	return Config{
		Level:      "info",
		OutputPath: "tui.log",
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   false,
		Console:    false,
	}
}

// New builds a logger from cfg. Extra cores, such as the UI log pane, are
// teed with the configured sinks and filtered by the same level.
func New(cfg Config, extra ...zapcore.Core) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var cores []zapcore.Core
	if cfg.OutputPath != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.OutputPath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), fileWriter, level))
	}
	if cfg.Console {
		consoleEncoder := encoderConfig
		consoleEncoder.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEncoder),
			zapcore.Lock(os.Stderr),
			level,
		))
	}
	for _, c := range extra {
		leveled, err := zapcore.NewIncreaseLevelCore(c, level)
		if err != nil {
			// c is stricter than level already
			leveled = c
		}
		cores = append(cores, leveled)
	}

	return zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}
