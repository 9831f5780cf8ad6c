package worker

import "errors"

var (
	ErrPoolNotStarted     = errors.New("worker pool not started")
	ErrPoolStopped        = errors.New("worker pool stopped")
	ErrPoolAlreadyStarted = errors.New("worker pool already started")
	// ErrQueueFull is returned by Submit when no queue slot is free.
	ErrQueueFull    = errors.New("worker pool queue full")
	ErrNilProcessor = errors.New("processor function cannot be nil")
	// ErrStopTimeout is returned by Stop when workers are still busy after
	// the timeout. The pool stays stoppable.
	ErrStopTimeout = errors.New("timeout waiting for workers to stop")
)
