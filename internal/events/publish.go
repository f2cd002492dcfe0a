package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/thenoetrevino/lanes/internal/types"
)

// PublishWithRetry sends event with up to maxRetries attempts and exponential
// backoff (50ms, 100ms, 200ms, ...). A nil publisher is a no-op.
// Invalidations are best effort: callers log the error and carry on.
func PublishWithRetry(ctx context.Context, publisher EventPublisher, event Event, maxRetries int) error {
	if publisher == nil {
		return nil
	}

	var lastErr error
	baseDelay := 50 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := publisher.SendEvent(event)
		if err == nil {
			if attempt > 0 {
				slog.Debug("event published after retry",
					"attempt", attempt+1,
					"event_type", event.Type,
					"owner_id", event.OwnerID)
			}
			return nil
		}
		lastErr = err

		if attempt == maxRetries-1 {
			break
		}
		delay := baseDelay * (1 << attempt)
		slog.Debug("event publish failed, retrying",
			"attempt", attempt+1,
			"max_retries", maxRetries,
			"retry_delay", delay,
			"error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	slog.Warn("event publish failed after all retries",
		"attempts", maxRetries,
		"event_type", event.Type,
		"owner_id", event.OwnerID,
		"error", lastErr)
	return lastErr
}

// Invalidator publishes board invalidations through an EventPublisher
type Invalidator struct {
	publisher EventPublisher
	retries   int
}

// NewInvalidator creates an invalidator. A nil publisher makes every
// Invalidate a no-op, for running without a daemon.
func NewInvalidator(publisher EventPublisher) *Invalidator {
	return &Invalidator{publisher: publisher, retries: 3}
}

// Invalidate tells every client showing owner's board to refetch it
func (i *Invalidator) Invalidate(ctx context.Context, owner types.OwnerID) error {
	if i == nil {
		return nil
	}
	return PublishWithRetry(ctx, i.publisher, Event{
		Type:      EventBoardInvalidated,
		OwnerID:   owner,
		Timestamp: time.Now(),
	}, i.retries)
}
