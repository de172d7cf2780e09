package main

import (
	"context"
	"os"
	"os/signal"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// exit terminates the process, replaced in tests.
var exit = os.Exit

type rootCmdConfig struct {
	verbose    bool
	logger     *zap.Logger
	ctx        context.Context
	cancelFunc context.CancelFunc
}

// Logger returns the logger for the command, writing to STDERR at info
// level when verbose and at warn level otherwise.
func (rcc *rootCmdConfig) Logger() *zap.Logger {
	if rcc.logger != nil {
		return rcc.logger
	}
	level := zapcore.WarnLevel
	if rcc.verbose {
		level = zapcore.InfoLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	rcc.logger = logger
	return logger
}

func (rcc *rootCmdConfig) Logf(format string, a ...interface{}) {
	rcc.Logger().Sugar().Infof(format, a...)
}

// Context returns a context that is cancelled on interrupt.
func (rcc *rootCmdConfig) Context() context.Context {
	rcc.setContextAndCancelFunc()
	return rcc.ctx
}

func (rcc *rootCmdConfig) ContextCancelFunc() context.CancelFunc {
	rcc.setContextAndCancelFunc()
	return rcc.cancelFunc
}

func (rcc *rootCmdConfig) setContextAndCancelFunc() {
	if rcc.ctx == nil {
		rcc.ctx, rcc.cancelFunc = signal.NotifyContext(context.Background(), os.Interrupt)
	}
}

// Close flushes the logger and releases the context.
func (rcc *rootCmdConfig) Close() {
	if rcc.cancelFunc != nil {
		rcc.cancelFunc()
	}
	if rcc.logger != nil {
		_ = rcc.logger.Sync()
	}
}

// Exit closes the config and terminates the process with the given
// status code.
func (rcc *rootCmdConfig) Exit(code int) {
	rcc.Close()
	exit(code)
}
