// Package logging provides the shared structured logger for the core.
//
// The core never fails on logically invalid input (spec §4.1, §4.2); it
// warns instead. This package centralizes that warning channel so every
// component logs through the same sink instead of rolling its own.
package logging

import (
	"sync"

	"go.uber.org/zap"
)

var (
	once   sync.Once
	logger *zap.SugaredLogger
)

// L returns the process-wide sugared logger, built lazily on first use.
func L() *zap.SugaredLogger {
	once.Do(func() {
		base, err := zap.NewProduction()
		if err != nil {
			base = zap.NewNop()
		}
		logger = base.Sugar()
	})
	return logger
}

// SetLogger overrides the process-wide logger, for hosts that want to
// route core warnings through their own zap instance (e.g. a CLI that
// configures a development logger). Intended to be called once at
// startup, before any core operation runs.
func SetLogger(l *zap.Logger) {
	once.Do(func() {})
	logger = l.Sugar()
}
