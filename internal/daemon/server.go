// Package daemon runs the invalidation broadcast server. Clients connect over a
// unix socket, subscribe to an owner's board and receive every
// board_invalidated event published for that owner.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/types"
)

const (
	defaultPingInterval   = 30 * time.Second
	defaultHealthInterval = 60 * time.Second
	defaultStaleAfter     = 90 * time.Second
)

// client is one connection to the daemon
type client struct {
	conn         net.Conn
	send         chan events.Message
	subscription events.SubscribeMessage
	lastPong     time.Time
	mu           sync.Mutex // guards subscription and lastPong
	closeOnce    sync.Once
}

func (c *client) owner() types.OwnerID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subscription.OwnerID
}

// Server is the lanes event daemon
type Server struct {
	socketPath       string
	listener         net.Listener
	clients          map[*client]bool
	mu               sync.RWMutex
	ctx              context.Context
	cancel           context.CancelFunc
	broadcast        chan events.Event
	metrics          *Metrics
	sequenceCounter  atomic.Int64
	clientBufferSize int
	shutdownOnce     sync.Once

	pingInterval   time.Duration
	healthInterval time.Duration
	staleAfter     time.Duration
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}

// NewServer listens on socketPath, replacing a stale socket file left by a
// previous run
func NewServer(socketPath string) (*Server, error) {
	if dir := filepath.Dir(socketPath); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create socket directory: %w", err)
		}
	}

	if _, err := os.Stat(socketPath); err == nil {
		if err := os.Remove(socketPath); err != nil {
			return nil, fmt.Errorf("failed to remove stale socket: %w", err)
		}
	}

	lc := net.ListenConfig{}
	listener, err := lc.Listen(context.Background(), "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create socket listener: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		socketPath:       socketPath,
		listener:         listener,
		clients:          make(map[*client]bool),
		ctx:              ctx,
		cancel:           cancel,
		broadcast:        make(chan events.Event, getEnvInt("LANES_DAEMON_BROADCAST_BUFFER", 100)),
		metrics:          NewMetrics(),
		clientBufferSize: getEnvInt("LANES_DAEMON_CLIENT_BUFFER", 10),
		pingInterval:     defaultPingInterval,
		healthInterval:   defaultHealthInterval,
		staleAfter:       defaultStaleAfter,
	}, nil
}

// SocketPath returns the path the server listens on
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Metrics returns a snapshot of the daemon counters
func (s *Server) Metrics() MetricsSnapshot {
	return s.metrics.Snapshot()
}

// Start serves until ctx is cancelled or the listener fails, then shuts down
func (s *Server) Start(ctx context.Context) error {
	slog.Info("daemon starting", "socket", s.socketPath)

	combinedCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-s.ctx.Done():
			cancel()
		case <-combinedCtx.Done():
		}
	}()

	acceptErr := make(chan error, 1)
	go func() {
		acceptErr <- s.acceptLoop(combinedCtx)
	}()

	go s.broadcastLoop(combinedCtx)
	go s.monitorHealth(combinedCtx)

	select {
	case <-combinedCtx.Done():
		slog.Info("daemon context cancelled, shutting down")
	case err := <-acceptErr:
		if err != nil {
			slog.Error("accept loop failed", "error", err)
		}
	}

	slog.Info("daemon metrics", "metrics", s.Metrics())
	return s.Shutdown()
}

func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// Deadline so the loop can notice cancellation
		if ul, ok := s.listener.(*net.UnixListener); ok {
			if err := ul.SetDeadline(time.Now().Add(1 * time.Second)); err != nil {
				slog.Warn("set listener deadline", "error", err)
			}
		}

		conn, err := s.listener.Accept()
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept error: %w", err)
		}

		c := &client{
			conn:     conn,
			send:     make(chan events.Message, s.clientBufferSize),
			lastPong: time.Now(),
		}

		s.mu.Lock()
		s.clients[c] = true
		s.mu.Unlock()
		s.updateClientCount()

		slog.Debug("client connected", "clients", s.getClientCount())

		go s.handleClient(c)
		go s.clientWriter(c)
	}
}

// broadcastLoop stamps each event with the next sequence id and fans it out
// to every client whose subscription matches the event's owner
func (s *Server) broadcastLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-s.broadcast:
			if !ok {
				return
			}
			event.SequenceID = s.sequenceCounter.Add(1)
			if event.Type == events.EventBoardInvalidated {
				s.metrics.IncInvalidations()
			}

			s.mu.RLock()
			for c := range s.clients {
				if !event.Matches(c.owner()) {
					continue
				}
				evt := event
				msg := events.Message{
					Version: events.ProtocolVersion,
					Type:    "event",
					Event:   &evt,
				}
				if !s.sendToClient(c, msg) {
					s.metrics.IncEventsDropped()
					slog.Warn("client send queue full, event dropped",
						"owner_id", event.OwnerID,
						"sequence_id", event.SequenceID)
				}
			}
			s.mu.RUnlock()
		}
	}
}

func (s *Server) handleClient(c *client) {
	defer func() {
		s.removeClient(c)
		slog.Debug("client disconnected", "clients", s.getClientCount())
	}()

	decoder := json.NewDecoder(c.conn)
	for {
		var msg events.Message
		if err := decoder.Decode(&msg); err != nil {
			return
		}

		if msg.Version != 0 && msg.Version != events.ProtocolVersion {
			slog.Warn("protocol version mismatch", "got", msg.Version, "want", events.ProtocolVersion)
		}

		switch msg.Type {
		case "event":
			if msg.Event == nil {
				continue
			}
			// Clients answer pings with a pong event
			if msg.Event.Type == events.EventPong {
				c.touch()
				continue
			}
			s.metrics.IncEventsReceived()
			select {
			case s.broadcast <- *msg.Event:
			default:
				s.metrics.IncEventsDropped()
				slog.Warn("broadcast channel full", "owner_id", msg.Event.OwnerID)
			}

		case "subscribe":
			if msg.Subscribe != nil {
				c.mu.Lock()
				c.subscription = *msg.Subscribe
				c.mu.Unlock()
				slog.Debug("client subscribed", "owner_id", msg.Subscribe.OwnerID)
			}

		case "pong":
			c.touch()
		}
	}
}

func (c *client) touch() {
	c.mu.Lock()
	c.lastPong = time.Now()
	c.mu.Unlock()
}

func (s *Server) clientWriter(c *client) {
	encoder := json.NewEncoder(c.conn)
	for msg := range c.send {
		if err := encoder.Encode(msg); err != nil {
			return
		}
	}
}

// monitorHealth pings every client and drops the ones that stop answering
func (s *Server) monitorHealth(ctx context.Context) {
	pingTicker := time.NewTicker(s.pingInterval)
	defer pingTicker.Stop()

	healthTicker := time.NewTicker(s.healthInterval)
	defer healthTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-pingTicker.C:
			pingMsg := events.Message{
				Version: events.ProtocolVersion,
				Type:    "ping",
				Event:   &events.Event{Type: events.EventPing},
			}
			s.mu.RLock()
			for c := range s.clients {
				if !s.sendToClient(c, pingMsg) {
					slog.Warn("failed to send ping, queue full", "owner_id", c.owner())
				}
			}
			s.mu.RUnlock()

		case <-healthTicker.C:
			now := time.Now()
			var stale []*client
			for _, c := range s.snapshotClients() {
				c.mu.Lock()
				lastPong := c.lastPong
				c.mu.Unlock()
				if now.Sub(lastPong) > s.staleAfter {
					stale = append(stale, c)
				}
			}
			for _, c := range stale {
				slog.Info("removing stale client", "owner_id", c.owner())
				s.removeClient(c)
			}
		}
	}
}

func (s *Server) snapshotClients() []*client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	return clients
}

// Broadcast queues an event for delivery without blocking
func (s *Server) Broadcast(event events.Event) error {
	select {
	case <-s.ctx.Done():
		return errors.New("daemon shut down")
	default:
	}
	select {
	case s.broadcast <- event:
		return nil
	default:
		s.metrics.IncEventsDropped()
		return errors.New("broadcast channel full")
	}
}

// Shutdown closes the listener and every client, and removes the socket file.
// It is safe to call more than once.
func (s *Server) Shutdown() error {
	s.shutdownOnce.Do(func() {
		slog.Info("shutting down daemon")
		s.cancel()

		if s.listener != nil {
			if err := s.listener.Close(); err != nil {
				slog.Debug("close listener", "error", err)
			}
		}

		s.mu.Lock()
		for c := range s.clients {
			_ = c.conn.Close()
			c.closeOnce.Do(func() { close(c.send) })
		}
		s.clients = make(map[*client]bool)
		s.mu.Unlock()
		s.updateClientCount()

		if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to remove socket file", "error", err)
		}
	})
	return nil
}

func (s *Server) getClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) updateClientCount() {
	s.metrics.SetConnectedClients(int32(s.getClientCount()))
}

// removeClient closes c.send under the server lock; senders hold at least
// the read lock, so they never see a closed queue
func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	c.closeOnce.Do(func() { close(c.send) })
	s.mu.Unlock()

	_ = c.conn.Close()
	s.updateClientCount()
}

// sendToClient queues msg for c, reporting false when the queue is full.
// Callers hold s.mu.
func (s *Server) sendToClient(c *client, msg events.Message) bool {
	select {
	case c.send <- msg:
		s.metrics.IncEventsSent()
		return true
	default:
		return false
	}
}
