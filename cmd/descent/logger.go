package main

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// traceLevel makes the engine's V(1) and V(2) messages visible through zapr.
const traceLevel = zapcore.Level(-2)

// newLogger builds the command logger. Quiet discards everything, verbose
// enables parser tracing.
func newLogger(verbose, quiet bool) (logr.Logger, func(), error) {
	if quiet {
		return logr.Discard(), func() {}, nil
	}

	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)

	if verbose {
		zapCfg.Level = zap.NewAtomicLevelAt(traceLevel)
	}

	zl, err := zapCfg.Build()
	if err != nil {
		return logr.Logger{}, nil, err
	}

	return zapr.NewLogger(zl), func() { _ = zl.Sync() }, nil
}
