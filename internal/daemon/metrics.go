package daemon

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Metrics counts daemon traffic. All methods are safe for concurrent use.
type Metrics struct {
	eventsSent       atomic.Int64
	eventsReceived   atomic.Int64
	eventsDropped    atomic.Int64
	invalidations    atomic.Int64
	connectedClients atomic.Int32
	startTime        time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

func (m *Metrics) IncEventsSent()     { m.eventsSent.Add(1) }
func (m *Metrics) IncEventsReceived() { m.eventsReceived.Add(1) }
func (m *Metrics) IncEventsDropped()  { m.eventsDropped.Add(1) }
func (m *Metrics) IncInvalidations()  { m.invalidations.Add(1) }

func (m *Metrics) SetConnectedClients(count int32) {
	m.connectedClients.Store(count)
}

// MetricsSnapshot is a point-in-time copy of the counters
type MetricsSnapshot struct {
	EventsSent       int64         `json:"events_sent"`
	EventsReceived   int64         `json:"events_received"`
	EventsDropped    int64         `json:"events_dropped"`
	Invalidations    int64         `json:"invalidations"`
	ConnectedClients int32         `json:"connected_clients"`
	StartTime        time.Time     `json:"start_time"`
	Uptime           time.Duration `json:"uptime"`
}

// Snapshot reads every counter. Counters are read one at a time, so a
// snapshot taken under load may mix adjacent instants.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		EventsSent:       m.eventsSent.Load(),
		EventsReceived:   m.eventsReceived.Load(),
		EventsDropped:    m.eventsDropped.Load(),
		Invalidations:    m.invalidations.Load(),
		ConnectedClients: m.connectedClients.Load(),
		StartTime:        m.startTime,
		Uptime:           time.Since(m.startTime).Round(time.Second),
	}
}

// LogValue groups the snapshot under one slog attribute
func (s MetricsSnapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("events_sent", s.EventsSent),
		slog.Int64("events_received", s.EventsReceived),
		slog.Int64("events_dropped", s.EventsDropped),
		slog.Int64("invalidations", s.Invalidations),
		slog.Int("connected_clients", int(s.ConnectedClients)),
		slog.Duration("uptime", s.Uptime),
	)
}
