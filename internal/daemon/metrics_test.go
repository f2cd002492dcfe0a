package daemon

import (
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()
	m.IncEventsSent()
	m.IncEventsSent()
	m.IncEventsReceived()
	m.IncEventsDropped()
	m.IncInvalidations()
	m.SetConnectedClients(3)

	s := m.Snapshot()
	assert.Equal(t, int64(2), s.EventsSent)
	assert.Equal(t, int64(1), s.EventsReceived)
	assert.Equal(t, int64(1), s.EventsDropped)
	assert.Equal(t, int64(1), s.Invalidations)
	assert.Equal(t, int32(3), s.ConnectedClients)
	assert.WithinDuration(t, time.Now(), s.StartTime, time.Second)

	m.IncEventsSent()
	assert.Equal(t, int64(2), s.EventsSent, "snapshots do not change afterwards")
}

func TestMetrics_Concurrent(t *testing.T) {
	m := NewMetrics()
	const workers, perWorker = 8, 500

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				m.IncEventsSent()
				m.IncInvalidations()
				_ = m.Snapshot()
			}
		}()
	}
	wg.Wait()

	s := m.Snapshot()
	assert.Equal(t, int64(workers*perWorker), s.EventsSent)
	assert.Equal(t, int64(workers*perWorker), s.Invalidations)
}

func TestMetricsSnapshot_LogValue(t *testing.T) {
	m := NewMetrics()
	m.IncInvalidations()

	v := m.Snapshot().LogValue()
	assert.Equal(t, slog.KindGroup, v.Kind())

	attrs := map[string]slog.Value{}
	for _, a := range v.Group() {
		attrs[a.Key] = a.Value
	}
	assert.Equal(t, int64(1), attrs["invalidations"].Int64())
	assert.Contains(t, attrs, "connected_clients")
}
