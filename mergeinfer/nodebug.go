//go:build !debug
// +build !debug

package mergeinfer

import (
	"log"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/nickng/cfgpath/mergeinfer/internal/mergeinfer"
)

// newLogger returns a new logger with default options.
func newLogger() *mergeinfer.Logger {
	color.NoColor = true
	l, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Cannot create new logger:", err)
	}
	return &mergeinfer.Logger{SugaredLogger: l.Sugar()}
}

// newFileLogger returns base extended to also write the log output to files.
func newFileLogger(base *zap.Logger, files ...string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = files
	l, err := cfg.Build()
	if err != nil {
		log.Fatal("Cannot create new logger:", err)
	}
	return zap.New(zapcore.NewTee(base.Core(), l.Core()))
}
