package queue

type Option[T any] interface {
	Apply(q *queue[T])
}

type queueOptionFunc[T any] func(*queue[T])

func (f queueOptionFunc[T]) Apply(q *queue[T]) {
	f(q)
}

func WithMaxConsumers[T any](max int) Option[T] {
	return queueOptionFunc[T](func(q *queue[T]) {
		q.maxConsumers = max
	})
}
