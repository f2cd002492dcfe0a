package app

import (
	"github.com/thenoetrevino/lanes/internal/events"
)

// Option overrides one of the App's configured settings
type Option func(*options)

type options struct {
	publisher        events.EventPublisher
	readOnly         *bool
	distance         *float64
	writeConcurrency int
}

// WithEventPublisher sets the transport used to invalidate and listen for
// board changes. Without it the App runs standalone.
func WithEventPublisher(p events.EventPublisher) Option {
	return func(o *options) {
		o.publisher = p
	}
}

// WithReadOnly overrides board.read_only for controllers built by the App
func WithReadOnly(readOnly bool) Option {
	return func(o *options) {
		o.readOnly = &readOnly
	}
}

// WithActivationDistance overrides board.activation_distance, in cells
func WithActivationDistance(distance float64) Option {
	return func(o *options) {
		o.distance = &distance
	}
}

// WithWriteConcurrency bounds the row writes of one batch; values below 1
// keep the configured limit
func WithWriteConcurrency(n int) Option {
	return func(o *options) {
		o.writeConcurrency = n
	}
}
