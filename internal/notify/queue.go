package notify

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrQueueFull    = errors.New("notification queue is full")
	ErrQueueClosed  = errors.New("notification queue is closed")
	ErrMalformedJob = errors.New("malformed notification job")
)

// Queue hands notification jobs from the request path to the worker.
// Enqueue must not block the caller.
type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Dequeue(ctx context.Context) (Job, error)
	Close() error
}

// ChannelQueue is an in-process Queue backed by a buffered channel.
// Jobs still buffered when the process exits are lost.
type ChannelQueue struct {
	jobs   chan Job
	closed chan struct{}
	once   sync.Once
}

func NewChannelQueue(size int) *ChannelQueue {
	if size < 1 {
		size = 1
	}
	return &ChannelQueue{
		jobs:   make(chan Job, size),
		closed: make(chan struct{}),
	}
}

func (q *ChannelQueue) Enqueue(ctx context.Context, job Job) error {
	select {
	case <-q.closed:
		return ErrQueueClosed
	default:
	}

	select {
	case q.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

func (q *ChannelQueue) Dequeue(ctx context.Context) (Job, error) {
	select {
	case job := <-q.jobs:
		return job, nil
	default:
	}

	select {
	case job := <-q.jobs:
		return job, nil
	case <-ctx.Done():
		return Job{}, ctx.Err()
	case <-q.closed:
		return Job{}, ErrQueueClosed
	}
}

// Len reports the number of buffered jobs.
func (q *ChannelQueue) Len() int {
	return len(q.jobs)
}

func (q *ChannelQueue) Close() error {
	q.once.Do(func() { close(q.closed) })
	return nil
}
