// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	instance *zap.SugaredLogger
	mtx      sync.RWMutex
)

func init() {
	instance = zap.NewNop().Sugar()
}

// New creates a zap sugared logger, development mode prints human readable logs
func New(debug bool) (*zap.SugaredLogger, error) {
	var (
		inst *zap.Logger
		err  error
	)
	if debug {
		inst, err = zap.NewDevelopment()
	} else {
		inst, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return inst.Sugar(), nil
}

// Set replaces the global logger
func Set(l *zap.SugaredLogger) {
	mtx.Lock()
	defer mtx.Unlock()
	instance = l
}

// I returns the global logger
func I() *zap.SugaredLogger {
	mtx.RLock()
	defer mtx.RUnlock()
	return instance
}
