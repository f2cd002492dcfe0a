package models

import "errors"

// Domain-specific errors shared by the store and the services
var (
	// ErrCardNotFound indicates that no card exists with the requested id
	ErrCardNotFound = errors.New("card not found")

	// ErrUnknownLane indicates a lane id outside the configured lane set
	ErrUnknownLane = errors.New("unknown lane")
)
