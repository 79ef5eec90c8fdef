package logctx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhima-Mochi/minishop-modules/internal/observability"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability/logctx"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability/observabilitytest"
)

func TestFromOr(t *testing.T) {
	rec := observabilitytest.New()
	fallback := rec.Logger()

	assert.Nil(t, logctx.From(context.Background()))
	assert.Equal(t, fallback, logctx.FromOr(context.Background(), fallback))
	assert.NotNil(t, logctx.FromOr(context.Background(), nil))

	ctx := logctx.With(context.Background(), nil)
	assert.Nil(t, logctx.From(ctx))
}

func TestEnrich(t *testing.T) {
	rec := observabilitytest.New()

	ctx := logctx.Enrich(context.Background(), rec.Logger(), observability.F("request_id", "r1"))
	ctx = logctx.Enrich(ctx, nil, observability.F("use_case", "cart.add_item"))
	logctx.From(ctx).Info("hello")

	e, ok := rec.Find("hello")
	require.True(t, ok)
	assert.Equal(t, "r1", e.Fields["request_id"])
	assert.Equal(t, "cart.add_item", e.Fields["use_case"])
}
