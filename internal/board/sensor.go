package board

import (
	"math"

	"github.com/thenoetrevino/lanes/internal/types"
)

// DefaultActivationDistance is the pointer travel, in cells, before a press
// on a card becomes a drag
const DefaultActivationDistance = 2

// Sensor turns press/move/release pointer input into drag activation. A press
// only becomes a drag once the pointer has travelled the activation distance;
// anything shorter is a click.
type Sensor struct {
	distance float64

	pressed bool
	active  bool
	cardID  types.CardID
	x0, y0  int
}

// NewSensor creates a sensor. A distance of +Inf never activates.
func NewSensor(distance float64) *Sensor {
	if distance < 0 {
		distance = 0
	}
	return &Sensor{distance: distance}
}

// Distance returns the activation distance
func (s *Sensor) Distance() float64 {
	return s.distance
}

// Press records a pointer press on a card
func (s *Sensor) Press(cardID types.CardID, x, y int) {
	s.pressed = true
	s.active = false
	s.cardID = cardID
	s.x0, s.y0 = x, y
}

// Move reports true exactly once, on the move that crosses the activation distance
func (s *Sensor) Move(x, y int) bool {
	if !s.pressed || s.active || math.IsInf(s.distance, 1) {
		return false
	}
	if math.Hypot(float64(x-s.x0), float64(y-s.y0)) < s.distance {
		return false
	}
	s.active = true
	return true
}

// Release ends the gesture and reports whether it had become a drag
func (s *Sensor) Release() bool {
	wasActive := s.active
	s.Reset()
	return wasActive
}

// Reset forgets the current gesture
func (s *Sensor) Reset() {
	s.pressed = false
	s.active = false
	s.cardID = ""
}

// Pressed reports whether a press is being tracked
func (s *Sensor) Pressed() bool {
	return s.pressed
}

// Active reports whether the tracked press became a drag
func (s *Sensor) Active() bool {
	return s.active
}

// CardID returns the pressed card
func (s *Sensor) CardID() types.CardID {
	return s.cardID
}
