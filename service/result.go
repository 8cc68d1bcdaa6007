package service

// Result is the single outcome of an operation: exactly one of a typed
// success payload or a normalized error.
type Result[T any] struct {
	Value *T
	Err   error
}

// resultChan returns a channel with room for the single outcome, so the
// fulfilling goroutine never blocks on a slow consumer.
func resultChan[T any]() chan Result[T] {
	return make(chan Result[T], 1)
}

// succeed fulfills the channel with a success payload.
func succeed[T any](out chan Result[T], v *T) {
	out <- Result[T]{Value: v}
}

// fail fulfills the channel with an error.
func fail[T any](out chan Result[T], err error) {
	out <- Result[T]{Err: err}
}
