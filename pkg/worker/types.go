package worker

import (
	"context"
	"time"
)

// Task is a unit of work producing a value of type T.
type Task[T any] struct {
	// ID identifies the task in its Result
	ID int

	// Execute performs the work. It receives the pool context.
	Execute func(context.Context) (T, error)
}

// Result is the outcome of one Task. A failed task carries its error in Err
// instead of aborting the whole batch.
type Result[T any] struct {
	ID    int
	Value T
	Err   error

	order int
}

// Config holds the configuration for the worker pool
type Config struct {
	// Workers is the number of concurrent workers
	Workers int

	// RateLimit is the maximum number of tasks started per second (0 for unlimited)
	RateLimit int
}

// Status is the lifecycle stage of a pool
type Status string

const (
	// StatusNew means Start has not been called yet
	StatusNew Status = "new"

	// StatusRunning means the pool accepts tasks
	StatusRunning Status = "running"

	// StatusDrained means Wait collected every result
	StatusDrained Status = "drained"

	// StatusStopped means Stop released the workers
	StatusStopped Status = "stopped"
)

// Stats is a snapshot of a pool's counters
type Stats struct {
	Workers int
	Active  int
	Queued  int

	// Submitted counts accepted tasks, Succeeded and Failed the finished ones
	Submitted int
	Succeeded int
	Failed    int

	Status Status
	Uptime time.Duration
}
