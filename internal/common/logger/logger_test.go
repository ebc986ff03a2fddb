package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestZapAdapter_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).With(map[string]interface{}{"taskType": "compute-bmi"})

	log.WithError(errors.New("boom")).Error("job failed", map[string]interface{}{"jobKey": int64(7)})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "job failed", entries[0].Message)
		assert.Equal(t, "compute-bmi", fields["taskType"])
		assert.Equal(t, int64(7), fields["jobKey"])
		assert.Equal(t, "boom", fields["error"])
	}
}

func TestNewStructured_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		NewStructured("debug", "console").Debug("hello", nil)
		NewNoOpLogger().Info("quiet", map[string]interface{}{"k": "v"})
		NewTestLogger(t).Warn("visible", nil)
	})
}
