package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrClosed            = errors.New("queue closed")
	ErrTooManyConsumers  = errors.New("too many consumers")
	ErrCancelledConsumer = errors.New("consumer cancelled")
)

type Producer[T any] interface {
	Produce(value T) error
}

type Consumer[T any] interface {
	Consume(ctx context.Context) (T, error)
	Cancel()
}

// Queue fans every produced value out to all consumers registered at the time
// it was produced.
type Queue[T any] interface {
	Producer[T]
	NewConsumer() (Consumer[T], error)
	Close()
}

type queue[T any] struct {
	mu           sync.Mutex
	maxConsumers int
	consumers    map[string]*consumer[T]
	closed       bool
}

type consumer[T any] struct {
	id        string
	q         *queue[T]
	buffer    []T
	signal    chan struct{}
	cancelled bool
}

func (q *queue[T]) NewConsumer() (Consumer[T], error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil, ErrClosed
	}
	if q.maxConsumers > 0 && len(q.consumers) == q.maxConsumers {
		return nil, ErrTooManyConsumers
	}
	c := &consumer[T]{
		id:     uuid.NewString(),
		q:      q,
		signal: make(chan struct{}, 1),
	}
	q.consumers[c.id] = c
	return c, nil
}

func (q *queue[T]) Produce(value T) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	for _, c := range q.consumers {
		c.buffer = append(c.buffer, value)
		c.notify()
	}
	return nil
}

func (q *queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	for _, c := range q.consumers {
		c.notify()
	}
}

func (c *consumer[T]) notify() {
	select {
	case c.signal <- struct{}{}:
	default:
	}
}

// Consume returns the next value for this consumer, blocking until one is
// produced, the queue is closed or ctx is done. Values buffered before Close
// are still delivered.
func (c *consumer[T]) Consume(ctx context.Context) (T, error) {
	var zero T
	for {
		c.q.mu.Lock()
		if c.cancelled {
			c.q.mu.Unlock()
			return zero, ErrCancelledConsumer
		}
		if len(c.buffer) > 0 {
			value := c.buffer[0]
			c.buffer[0] = zero
			c.buffer = c.buffer[1:]
			c.q.mu.Unlock()
			return value, nil
		}
		closed := c.q.closed
		c.q.mu.Unlock()
		if closed {
			return zero, ErrClosed
		}
		select {
		case <-c.signal:
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

func (c *consumer[T]) Cancel() {
	c.q.mu.Lock()
	defer c.q.mu.Unlock()
	c.cancelled = true
	c.buffer = nil
	delete(c.q.consumers, c.id)
	c.notify()
}

func newQueue[T any]() *queue[T] {
	return &queue[T]{
		consumers: map[string]*consumer[T]{},
	}
}

func NewQueue[T any](options ...Option[T]) Queue[T] {
	q := newQueue[T]()
	for _, option := range options {
		option.Apply(q)
	}
	return q
}
