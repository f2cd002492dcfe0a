package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/thenoetrevino/lanes/internal/types"
)

// ErrNilClient is returned by methods called on a nil *Client
var ErrNilClient = errors.New("event client is nil")

// Client is a connection to the lanes daemon for publishing and receiving
// board invalidations. It batches outgoing events, reconnects with backoff and
// tracks the subscribed owner.
type Client struct {
	socketPath string
	conn       net.Conn
	encoder    *json.Encoder
	decoder    *json.Decoder
	mu         sync.Mutex

	// Batching
	eventQueue chan Event
	debounce   time.Duration
	closed     bool

	// Reconnection
	maxRetries int
	baseDelay  time.Duration

	owner        types.OwnerID
	lastSequence int64
	notify       NotifyFunc

	ctx         context.Context
	cancel      context.CancelFunc
	batcherOnce sync.Once
	batcherDone chan struct{}
}

// NewClient creates a client for the socket at socketPath but does not connect.
// Outgoing events are batched per debounce window (100ms, or
// LANES_EVENT_DEBOUNCE_MS).
func NewClient(socketPath string) (*Client, error) {
	debounceMs := 100
	if envVal := os.Getenv("LANES_EVENT_DEBOUNCE_MS"); envVal != "" {
		if parsed, err := strconv.Atoi(envVal); err == nil && parsed > 0 {
			debounceMs = parsed
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		socketPath:  socketPath,
		eventQueue:  make(chan Event, 100),
		debounce:    time.Duration(debounceMs) * time.Millisecond,
		maxRetries:  5,
		baseDelay:   1 * time.Second,
		ctx:         ctx,
		cancel:      cancel,
		batcherDone: make(chan struct{}),
	}, nil
}

// SetNotifyFunc installs a callback for connection status changes
func (c *Client) SetNotifyFunc(fn NotifyFunc) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notify = fn
}

func (c *Client) notifyf(level, format string, args ...any) {
	c.mu.Lock()
	fn := c.notify
	c.mu.Unlock()
	if fn != nil {
		fn(level, fmt.Sprintf(format, args...))
	}
}

// Connect dials the daemon and re-sends the current subscription
func (c *Client) Connect(ctx context.Context) error {
	if c == nil {
		return ErrNilClient
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.New("event client closed")
	}

	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to dial daemon socket: %w", err)
	}

	c.conn = conn
	c.lastSequence = 0 // a restarted daemon numbers from 1 again
	c.encoder = json.NewEncoder(conn)
	c.decoder = json.NewDecoder(conn)

	msg := Message{
		Version:   ProtocolVersion,
		Type:      "subscribe",
		Subscribe: &SubscribeMessage{OwnerID: c.owner},
	}
	if err := c.encoder.Encode(msg); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			slog.Error("error closing connection", "error", closeErr)
		}
		c.conn = nil
		return fmt.Errorf("failed to send subscription: %w", err)
	}

	c.batcherOnce.Do(func() { go c.startBatcher() })
	return nil
}

// SendEvent queues an event. Events are coalesced and sent once per debounce
// window. It fails rather than blocks when the queue is full.
func (c *Client) SendEvent(event Event) error {
	if c == nil {
		return ErrNilClient
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.New("event client closed")
	}

	select {
	case c.eventQueue <- event:
		return nil
	default:
		return errors.New("event queue full")
	}
}

// startBatcher coalesces queued invalidations. Events for a single owner are
// sent as that owner; a window mixing owners is sent as "" (every owner).
func (c *Client) startBatcher() {
	defer close(c.batcherDone)

	ticker := time.NewTicker(c.debounce)
	defer ticker.Stop()

	var (
		pending bool
		owner   types.OwnerID
		mixed   bool
	)

	track := func(e Event) {
		if !pending {
			pending = true
			owner = e.OwnerID
			mixed = false
			return
		}
		if owner != e.OwnerID {
			mixed = true
		}
	}

	flush := func() {
		if !pending {
			return
		}
		batchOwner := owner
		if mixed {
			batchOwner = ""
		}
		if err := c.sendToSocket(Event{
			Type:      EventBoardInvalidated,
			OwnerID:   batchOwner,
			Timestamp: time.Now(),
		}); err != nil && !isConnectionError(err) {
			slog.Warn("failed to send batched event", "owner_id", batchOwner, "error", err)
		}
		pending = false
	}

	for {
		select {
		case <-c.ctx.Done():
			flush()
			return

		case event, ok := <-c.eventQueue:
			if !ok {
				flush()
				return
			}
			track(event)

		drain:
			for {
				select {
				case evt, ok := <-c.eventQueue:
					if !ok {
						break drain
					}
					track(evt)
				default:
					break drain
				}
			}

		case <-ticker.C:
			flush()
		}
	}
}

func (c *Client) sendToSocket(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return errors.New("not connected to daemon")
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return fmt.Errorf("connection error: %w", err)
	}
	return c.encoder.Encode(Message{Version: ProtocolVersion, Type: "event", Event: &event})
}

// Listen returns a channel of events for the subscribed owner. It reconnects
// automatically; the channel closes when ctx is done or reconnection gives up.
func (c *Client) Listen(ctx context.Context) (<-chan Event, error) {
	eventChan := make(chan Event, 10)
	if c == nil {
		close(eventChan)
		return eventChan, ErrNilClient
	}
	go c.listenLoop(ctx, eventChan)
	return eventChan, nil
}

func (c *Client) listenLoop(ctx context.Context, eventChan chan Event) {
	defer close(eventChan)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		err := c.readEvents(ctx, eventChan)
		if err == nil || ctx.Err() != nil {
			return
		}
		slog.Warn("daemon connection lost, reconnecting", "error", err)
		c.notifyf("warning", "Lost connection to daemon, reconnecting...")

		if c.reconnect(ctx) {
			c.notifyf("info", "Reconnected to daemon")
			continue
		}
		slog.Error("giving up on daemon connection", "attempts", c.maxRetries)
		c.notifyf("error", "Could not reconnect to daemon, live updates disabled")
		return
	}
}

func (c *Client) readEvents(ctx context.Context, eventChan chan Event) error {
	for {
		c.mu.Lock()
		if c.conn == nil {
			c.mu.Unlock()
			return errors.New("connection closed")
		}
		if err := c.conn.SetReadDeadline(time.Now().Add(60 * time.Second)); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("failed to set read deadline: %w", err)
		}
		decoder := c.decoder
		c.mu.Unlock()

		var msg Message
		if err := decoder.Decode(&msg); err != nil {
			return fmt.Errorf("failed to decode message: %w", err)
		}

		switch msg.Type {
		case "event":
			if msg.Event == nil || msg.Event.SequenceID <= c.lastSequence {
				continue
			}
			c.lastSequence = msg.Event.SequenceID
			select {
			case eventChan <- *msg.Event:
			case <-ctx.Done():
				return ctx.Err()
			}

		case "ping":
			if err := c.sendToSocket(Event{Type: EventPong}); err != nil && !isConnectionError(err) {
				slog.Warn("failed to send pong", "error", err)
			}
		}
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "use of closed network connection")
}

// reconnect retries Connect with exponential backoff (1s, 2s, 4s, ...)
func (c *Client) reconnect(ctx context.Context) bool {
	delay := c.baseDelay

	for i := 0; i < c.maxRetries; i++ {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(delay):
			c.mu.Lock()
			if c.closed {
				c.mu.Unlock()
				return false
			}
			if c.conn != nil {
				if err := c.conn.Close(); err != nil {
					slog.Debug("error closing connection during reconnect", "error", err)
				}
				c.conn = nil
			}
			c.mu.Unlock()

			if err := c.Connect(ctx); err == nil {
				slog.Info("reconnected to daemon", "attempt", i+1)
				return true
			}
			slog.Debug("reconnection attempt failed", "attempt", i+1, "max", c.maxRetries, "retry_in", delay)
			delay *= 2
		}
	}
	return false
}

// Subscribe switches the subscription to owner ("" for every owner)
func (c *Client) Subscribe(owner types.OwnerID) error {
	if c == nil {
		return ErrNilClient
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.owner = owner
	if c.conn == nil {
		return errors.New("not connected to daemon")
	}
	return c.encoder.Encode(Message{
		Version:   ProtocolVersion,
		Type:      "subscribe",
		Subscribe: &SubscribeMessage{OwnerID: owner},
	})
}

// Close flushes pending events, closes the connection and stops all goroutines
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.eventQueue)
	c.mu.Unlock()

	// Make sure batcherDone is closed even if Connect never ran
	c.batcherOnce.Do(func() { go c.startBatcher() })
	<-c.batcherDone
	c.cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		err := c.conn.Close()
		c.conn = nil
		return err
	}
	return nil
}
