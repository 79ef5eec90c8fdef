// Package event is the publish/subscribe contract bounded contexts use to
// talk to each other without importing one another.
package event

import "context"

// Event is any domain event with a stable routing name.
type Event interface {
	EventName() string
}

// Handler processes a delivered event.
type Handler func(ctx context.Context, e Event) error

// Publisher hands events to the bus. Publish returns once the event is
// accepted, not once handlers ran.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Subscriber registers handlers by event name.
type Subscriber interface {
	Subscribe(eventName string, h Handler)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, e Event) error

func (f PublisherFunc) Publish(ctx context.Context, e Event) error { return f(ctx, e) }
