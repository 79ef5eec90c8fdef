package failure_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhima-Mochi/minishop-modules/internal/domain/failure"
)

func TestNew_KeepsMessage(t *testing.T) {
	err := failure.Domain(failure.ModuleOrder, "order already cancelled")

	assert.Equal(t, "order already cancelled", err.Message())
	assert.Equal(t, "order: order already cancelled", err.Error())
	assert.Equal(t, failure.KindDomain, err.Kind)
	assert.Equal(t, failure.ModuleOrder, err.Module)
}

func TestNew_EmptyMessageIsNormalised(t *testing.T) {
	err := failure.New(failure.KindConflict, failure.ModuleInventory, "")

	assert.Equal(t, "unspecified inventory conflict failure", err.Message())
}

func TestIs_MatchesSentinelThroughWrapping(t *testing.T) {
	sentinel := failure.NotFound(failure.ModuleCart, "cart not found")
	wrapped := fmt.Errorf("load: %w", sentinel.WithCause(errors.New("row missing")))

	assert.ErrorIs(t, wrapped, sentinel)
	assert.NotErrorIs(t, wrapped, failure.NotFound(failure.ModuleOrder, "cart not found"))
}

func TestKindAndModuleOf(t *testing.T) {
	err := fmt.Errorf("ctx: %w", failure.Validation(failure.ModuleIdentity, "email: email"))

	assert.Equal(t, failure.KindValidation, failure.KindOf(err))
	assert.Equal(t, failure.ModuleIdentity, failure.ModuleOf(err))
	assert.Equal(t, failure.Kind(""), failure.KindOf(errors.New("plain")))
	assert.Equal(t, failure.Module(""), failure.ModuleOf(nil))
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"infrastructure", failure.Infrastructure(failure.ModuleReport, "query failed", errors.New("conn reset")), true},
		{"deadline", context.DeadlineExceeded, true},
		{"canceled", context.Canceled, false},
		{"domain", failure.Domain(failure.ModuleInventory, "insufficient stock"), false},
		{"validation", failure.Validation(failure.ModuleCart, "quantity: gt=0"), false},
		{"not found", failure.NotFound(failure.ModuleProduct, "product not found"), false},
		{"plain", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failure.Retryable(tt.err))
		})
	}
}

func TestFromPort(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, failure.FromPort(failure.ModuleCart, "save cart", nil))
	})

	t.Run("typed failure passes through", func(t *testing.T) {
		in := failure.NotFound(failure.ModuleCart, "cart not found")
		assert.Same(t, in, failure.FromPort(failure.ModuleCart, "find cart", in))
	})

	t.Run("cancellation passes through", func(t *testing.T) {
		err := failure.FromPort(failure.ModuleCart, "find cart", context.Canceled)
		assert.Equal(t, context.Canceled, err)
	})

	t.Run("raw error becomes infrastructure", func(t *testing.T) {
		cause := errors.New("dial tcp: refused")
		err := failure.FromPort(failure.ModuleCart, "save cart", cause)

		fe, ok := failure.As(err)
		require.True(t, ok)
		assert.Equal(t, failure.KindInfrastructure, fe.Kind)
		assert.Equal(t, "save cart failed", fe.Message())
		assert.ErrorIs(t, err, cause)
		assert.True(t, failure.Retryable(err))
	})
}
