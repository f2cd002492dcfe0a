package events

import (
	"time"

	"github.com/thenoetrevino/lanes/internal/types"
)

// ProtocolVersion is sent with every message on the daemon socket
const ProtocolVersion = 1

// EventType indicates what kind of change occurred
type EventType string

const (
	// EventBoardInvalidated tells every client showing the owner's board to refetch it
	EventBoardInvalidated EventType = "board_invalidated"
	EventPing             EventType = "ping"
	EventPong             EventType = "pong"
)

// Event represents a board change notification
type Event struct {
	Type       EventType
	OwnerID    types.OwnerID // "" means every owner
	Timestamp  time.Time
	SequenceID int64 // monotonically increasing, assigned by the daemon
}

// SubscribeMessage is sent by clients to pick the owner whose events they get
type SubscribeMessage struct {
	OwnerID types.OwnerID // "" = all owners
}

// Message wraps events and control messages for the wire protocol
type Message struct {
	Version   int
	Type      string // "event", "subscribe", "ack", "ping", "pong"
	Event     *Event            `json:",omitempty"`
	Subscribe *SubscribeMessage `json:",omitempty"`
}

// Matches reports whether an event is relevant to a subscription for owner
func (e Event) Matches(owner types.OwnerID) bool {
	return owner == "" || e.OwnerID == "" || e.OwnerID == owner
}
