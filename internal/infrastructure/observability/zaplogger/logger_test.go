package zaplogger_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Zhima-Mochi/minishop-modules/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability"
)

func TestLogger_FieldsAndLevels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := zaplogger.FromCore(core).With(observability.F("component", "outbox"))

	l.Debug("hidden")
	l.Info("use_case_done", observability.F("use_case", "order.place"))
	l.Warn("event_handler_error", observability.F("error", errors.New("boom")))

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "use_case_done", entries[0].Message)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "outbox", ctx["component"])
	assert.Equal(t, "order.place", ctx["use_case"])
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestNew(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "app.log")
	l, err := zaplogger.New(zaplogger.Config{Level: "debug", File: file}, observability.F("service", "minishop"))
	require.NoError(t, err)
	l.Info("started")
	assert.FileExists(t, file)

	_, err = zaplogger.New(zaplogger.Config{Level: "loud"})
	assert.Error(t, err)
}
