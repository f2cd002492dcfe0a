package events

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisPublisher, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	p, err := NewRedisPublisher("redis://" + s.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	require.NoError(t, p.Connect(context.Background()))
	return p, s
}

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case e, ok := <-ch:
		require.True(t, ok, "channel closed")
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for redis event")
		return Event{}
	}
}

func TestRedisPublisher_RoundTrip(t *testing.T) {
	pub, s := setupTestRedis(t)

	sub, err := NewRedisPublisher("redis://" + s.Addr())
	require.NoError(t, err)
	defer func() { _ = sub.Close() }()
	require.NoError(t, sub.Subscribe("alice"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := sub.Listen(ctx)
	require.NoError(t, err)

	require.NoError(t, pub.SendEvent(Event{Type: EventBoardInvalidated, OwnerID: "bob"}))
	require.NoError(t, pub.SendEvent(Event{Type: EventBoardInvalidated, OwnerID: "alice"}))
	require.NoError(t, pub.SendEvent(Event{Type: EventBoardInvalidated}))

	first := receive(t, ch)
	assert.Equal(t, "alice", string(first.OwnerID), "bob's event is filtered out")
	assert.Equal(t, int64(2), first.SequenceID)
	assert.False(t, first.Timestamp.IsZero())

	second := receive(t, ch)
	assert.Equal(t, "", string(second.OwnerID))
	assert.Equal(t, int64(3), second.SequenceID)
}

func TestRedisPublisher_SequenceIsShared(t *testing.T) {
	pub, s := setupTestRedis(t)
	require.NoError(t, pub.SendEvent(Event{Type: EventBoardInvalidated, OwnerID: "alice"}))
	require.NoError(t, pub.SendEvent(Event{Type: EventBoardInvalidated, OwnerID: "alice"}))

	v, err := s.Get(redisSequenceKey)
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}

func TestRedisPublisher_ListenStopsOnCancel(t *testing.T) {
	p, _ := setupTestRedis(t)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := p.Listen(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop")
	}
	assert.NoError(t, p.Close())
}

func TestRedisPublisher_ConnectFails(t *testing.T) {
	s := miniredis.RunT(t)
	p, err := NewRedisPublisher("redis://" + s.Addr())
	require.NoError(t, err)
	defer func() { _ = p.Close() }()
	s.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.Error(t, p.Connect(ctx))
}

func TestRedisPublisher_BadURL(t *testing.T) {
	_, err := NewRedisPublisher("not a url")
	assert.Error(t, err)
}

func TestRedisPublisher_InvalidatorEndToEnd(t *testing.T) {
	pub, _ := setupTestRedis(t)
	sub := NewRedisPublisherWithClient(pub.client)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := sub.Listen(ctx)
	require.NoError(t, err)

	require.NoError(t, NewInvalidator(pub).Invalidate(ctx, "carol"))
	e := receive(t, ch)
	assert.Equal(t, EventBoardInvalidated, e.Type)
	assert.Equal(t, "carol", string(e.OwnerID))
}
