package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zhima-Mochi/minishop-modules/internal/application"
	"github.com/Zhima-Mochi/minishop-modules/internal/domain/event"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability/observabilitytest"
)

type pinged struct{}

func (pinged) EventName() string { return "test.pinged" }

func TestPublish_RecordsExternalCall(t *testing.T) {
	rec := observabilitytest.New()
	var got []event.Event
	pub := event.PublisherFunc(func(_ context.Context, e event.Event) error {
		got = append(got, e)
		return nil
	})

	require.NoError(t, application.Publish(context.Background(), pub, pinged{}, rec))

	assert.Len(t, got, 1)
	calls := rec.Counters(observability.MExternalRequests)
	require.Len(t, calls, 1)
	assert.Equal(t, "test.pinged", calls[0].Labels["endpoint"])
	assert.Equal(t, "success", calls[0].Labels["outcome"])
}

func TestPublish_FailureIsLoggedAndReturned(t *testing.T) {
	rec := observabilitytest.New()
	boom := errors.New("queue full")
	pub := event.PublisherFunc(func(context.Context, event.Event) error { return boom })

	err := application.Publish(context.Background(), pub, pinged{}, rec)

	assert.ErrorIs(t, err, boom)
	entry, ok := rec.Find("event_publish_failed")
	require.True(t, ok)
	assert.Equal(t, "test.pinged", entry.Fields["event"])
	assert.Equal(t, "error", rec.Counters(observability.MExternalRequests)[0].Labels["outcome"])
}

func TestPublish_NilPublisher(t *testing.T) {
	assert.NoError(t, application.Publish(context.Background(), nil, pinged{}, nil))
}
