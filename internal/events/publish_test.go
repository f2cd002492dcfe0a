package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/lanes/internal/types"
)

// mockRetryPublisher fails the first failUntil sends
type mockRetryPublisher struct {
	sendAttempts int
	failUntil    int
	lastEvent    Event
}

func (m *mockRetryPublisher) SendEvent(event Event) error {
	m.lastEvent = event
	attempt := m.sendAttempts
	m.sendAttempts++
	if attempt < m.failUntil {
		return errors.New("simulated send failure")
	}
	return nil
}

func (m *mockRetryPublisher) Connect(context.Context) error                { return nil }
func (m *mockRetryPublisher) Listen(context.Context) (<-chan Event, error) { return nil, nil }
func (m *mockRetryPublisher) Subscribe(types.OwnerID) error                { return nil }
func (m *mockRetryPublisher) SetNotifyFunc(NotifyFunc)                     {}
func (m *mockRetryPublisher) Close() error                                 { return nil }

func TestPublishWithRetry(t *testing.T) {
	tests := []struct {
		name         string
		failUntil    int
		wantErr      bool
		wantAttempts int
	}{
		{"first try", 0, false, 1},
		{"after retries", 2, false, 3},
		{"gives up", 99, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockRetryPublisher{failUntil: tt.failUntil}
			err := PublishWithRetry(context.Background(), mock, Event{Type: EventBoardInvalidated, OwnerID: "alice"}, 3)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantAttempts, mock.sendAttempts)
			assert.Equal(t, types.OwnerID("alice"), mock.lastEvent.OwnerID)
		})
	}
}

func TestPublishWithRetry_NilPublisher(t *testing.T) {
	assert.NoError(t, PublishWithRetry(context.Background(), nil, Event{}, 3))
}

func TestPublishWithRetry_StopsOnCancel(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 99}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := PublishWithRetry(ctx, mock, Event{}, 5)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.sendAttempts)
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestInvalidator(t *testing.T) {
	mock := &mockRetryPublisher{}
	inv := NewInvalidator(mock)

	require.NoError(t, inv.Invalidate(context.Background(), "bob"))
	assert.Equal(t, EventBoardInvalidated, mock.lastEvent.Type)
	assert.Equal(t, types.OwnerID("bob"), mock.lastEvent.OwnerID)
	assert.False(t, mock.lastEvent.Timestamp.IsZero())

	assert.NoError(t, NewInvalidator(nil).Invalidate(context.Background(), "bob"))

	var nilInv *Invalidator
	assert.NoError(t, nilInv.Invalidate(context.Background(), "bob"))
}

func TestEventMatches(t *testing.T) {
	assert.True(t, Event{OwnerID: "alice"}.Matches("alice"))
	assert.False(t, Event{OwnerID: "alice"}.Matches("bob"))
	assert.True(t, Event{OwnerID: ""}.Matches("bob"), "broadcast reaches everyone")
	assert.True(t, Event{OwnerID: "alice"}.Matches(""), "wildcard subscription")
}

func TestClassifyDaemonError(t *testing.T) {
	assert.Nil(t, ClassifyDaemonError(nil))

	err := ClassifyDaemonError(errors.New("something odd"))
	assert.Equal(t, ErrDaemonNotRunning, err.Code)
	assert.Contains(t, err.Error(), "lanes daemon")
	assert.EqualError(t, errors.Unwrap(err), "something odd")
}
