package bindz

import (
	"fmt"
	"time"
)

// StreamError represents a failure inside a stage.
// It captures the item being processed when the failure occurred and the
// underlying cause, so a subscriber can report or recover without the
// stream terminating.
//
//nolint:govet // fieldalignment: struct layout optimized for readability over memory
type StreamError struct {
	// Item is the input that was being processed, e.g. a request tuple.
	Item any

	// Err is the underlying cause.
	Err error

	// Stage identifies which stage produced the error.
	Stage string

	// Timestamp records when the error occurred.
	Timestamp time.Time
}

// NewStreamError creates a new StreamError with the current timestamp.
func NewStreamError(item any, err error, stage string) *StreamError {
	return &StreamError{
		Item:      item,
		Err:       err,
		Stage:     stage,
		Timestamp: time.Now(),
	}
}

// String returns a human-readable representation of the error.
func (se *StreamError) String() string {
	return fmt.Sprintf("StreamError[%s]: %v (item: %v, time: %s)",
		se.Stage, se.Err, se.Item, se.Timestamp.Format(time.RFC3339))
}

// Unwrap returns the underlying error, enabling error wrapping chains.
func (se *StreamError) Unwrap() error {
	return se.Err
}

// Error implements the error interface.
func (se *StreamError) Error() string {
	return se.String()
}
