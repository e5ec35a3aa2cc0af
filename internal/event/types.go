package event

import "context"

// Handler processes events delivered by the bus.
type Handler interface {
	// Handle processes an event.
	// The event parameter is type-erased; handlers should type-assert.
	Handle(ctx context.Context, event any) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, event any) error

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, event any) error {
	return f(ctx, event)
}

// TypedHandlerFunc handles events with a known payload type.
type TypedHandlerFunc[T any] func(ctx context.Context, event Event[T]) error

// AsHandler converts a TypedHandlerFunc to a Handler.
// Events with a different payload type are skipped.
func AsHandler[T any](fn TypedHandlerFunc[T]) Handler {
	return HandlerFunc(func(ctx context.Context, event any) error {
		if e, ok := event.(Event[T]); ok {
			return fn(ctx, e)
		}
		return nil
	})
}

// ErrorHandler receives handler failures. err is a *HandlerError or a
// *PanicError.
type ErrorHandler func(err error)

// Stats contains event bus statistics.
type Stats struct {
	// EventsPublished is the number of events accepted by Publish.
	EventsPublished uint64

	// EventsDelivered counts successful handler invocations.
	EventsDelivered uint64

	// HandlerErrors counts handlers that returned an error.
	HandlerErrors uint64

	// HandlerPanics counts handlers that panicked.
	HandlerPanics uint64

	// ActiveSubscribers is the current number of subscriptions.
	ActiveSubscribers int
}
