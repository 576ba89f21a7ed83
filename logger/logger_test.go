// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_Set(t *testing.T) {
	assert := assert.New(t)
	assert.NotNil(I(), "nop logger by default")

	core, logs := observer.New(zap.InfoLevel)
	prev := I()
	Set(zap.New(core).Sugar())
	defer Set(prev)

	I().Infow("certificate issued", "certId", "CERT-1")
	I().Debugw("hidden")

	assert.Equal(1, logs.Len())
	entry := logs.All()[0]
	assert.Equal("certificate issued", entry.Message)
	assert.Equal("CERT-1", entry.ContextMap()["certId"])
}

func TestLogger_New(t *testing.T) {
	l, err := New(true)
	assert.NoError(t, err)
	assert.NotNil(t, l)
}
