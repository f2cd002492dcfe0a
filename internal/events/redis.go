package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thenoetrevino/lanes/internal/types"
)

const (
	redisChannelPrefix = "lanes:board:"
	redisSequenceKey   = "lanes:seq"
)

// RedisPublisher carries board events over Redis pub/sub, for deployments
// where clients do not share a host with the daemon
type RedisPublisher struct {
	client     *redis.Client
	ownsClient bool

	mu      sync.Mutex
	owner   types.OwnerID
	notify  NotifyFunc
	pubsubs []*redis.PubSub
	closed  bool
}

// NewRedisPublisher creates a publisher for redisURL (redis://host:port/db).
// It does not connect until Connect.
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisPublisher{client: redis.NewClient(opts), ownsClient: true}, nil
}

// NewRedisPublisherWithClient wraps an existing client; Close leaves it open
func NewRedisPublisherWithClient(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func redisChannel(owner types.OwnerID) string {
	if owner == "" {
		return redisChannelPrefix + "*all"
	}
	return redisChannelPrefix + string(owner)
}

// Connect verifies the server is reachable
func (p *RedisPublisher) Connect(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	return nil
}

// SetNotifyFunc installs a connection status callback
func (p *RedisPublisher) SetNotifyFunc(fn NotifyFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notify = fn
}

// SendEvent stamps the event with the next global sequence id and publishes it
func (p *RedisPublisher) SendEvent(event Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	seq, err := p.client.Incr(ctx, redisSequenceKey).Result()
	if err != nil {
		return fmt.Errorf("next sequence id: %w", err)
	}
	event.SequenceID = seq
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.client.Publish(ctx, redisChannel(event.OwnerID), payload).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Subscribe filters received events to owner ("" for every owner)
func (p *RedisPublisher) Subscribe(owner types.OwnerID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.owner = owner
	return nil
}

// Listen subscribes to every board channel and forwards the events matching
// the current subscription. The channel closes when ctx is done or the
// publisher is closed.
func (p *RedisPublisher) Listen(ctx context.Context) (<-chan Event, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, errors.New("redis publisher closed")
	}
	p.mu.Unlock()

	ps := p.client.PSubscribe(ctx, redisChannelPrefix+"*")
	// Wait for the subscription to be confirmed so no event published after
	// Listen returns is missed
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe to redis: %w", err)
	}

	p.mu.Lock()
	p.pubsubs = append(p.pubsubs, ps)
	p.mu.Unlock()

	out := make(chan Event, 10)
	go func() {
		defer close(out)
		defer func() { _ = ps.Close() }()

		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					p.lost()
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					slog.Warn("dropping malformed redis event", "channel", msg.Channel, "error", err)
					continue
				}
				p.mu.Lock()
				owner := p.owner
				p.mu.Unlock()
				if !event.Matches(owner) {
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (p *RedisPublisher) lost() {
	p.mu.Lock()
	closed, fn := p.closed, p.notify
	p.mu.Unlock()
	if closed || fn == nil {
		return
	}
	fn("warning", "Lost connection to redis, live updates disabled")
}

// Close stops every listener and, when the publisher created the client, closes it
func (p *RedisPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	var errs []error
	for _, ps := range p.pubsubs {
		// Listeners whose context ended have already closed theirs
		if err := ps.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
			errs = append(errs, err)
		}
	}
	p.pubsubs = nil
	if p.ownsClient {
		if err := p.client.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
