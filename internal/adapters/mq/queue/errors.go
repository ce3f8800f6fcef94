package queue

import "errors"

// Sentinel kinds for queue errors.
var (
	ErrFull   = errors.New("donation queue full")
	ErrClosed = errors.New("donation queue closed")
)
