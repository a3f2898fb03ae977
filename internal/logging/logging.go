// Package logging builds the client's zap logger. Logs go to a rotated
// file only: stdout and stderr belong to the terminal UI.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a file-backed logger. An empty path returns a no-op
// logger so call sites never need nil checks.
func New(path string) *zap.Logger {
	if path == "" {
		return zap.NewNop()
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		CallerKey:      "caller",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    20, // MB
		MaxBackups: 3,
		MaxAge:     14, // days
	})

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), writer, zap.InfoLevel)
	return zap.New(core, zap.AddCaller())
}
