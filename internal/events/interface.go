package events

import (
	"context"

	"github.com/thenoetrevino/lanes/internal/types"
)

// NotifyFunc receives connection status messages for display ("info", "warning", "error")
type NotifyFunc func(level, message string)

// EventPublisher sends and receives board events. The daemon socket client
// and the Redis publisher both implement it.
type EventPublisher interface {
	// Connect establishes the connection
	Connect(ctx context.Context) error

	// SendEvent publishes an event
	SendEvent(event Event) error

	// Listen starts receiving events for the current subscription
	Listen(ctx context.Context) (<-chan Event, error)

	// Subscribe changes the subscription to one owner ("" for all)
	Subscribe(owner types.OwnerID) error

	// SetNotifyFunc installs a connection status callback
	SetNotifyFunc(fn NotifyFunc)

	// Close closes the connection and stops all goroutines
	Close() error
}

var (
	_ EventPublisher = (*Client)(nil)
	_ EventPublisher = (*RedisPublisher)(nil)
)
