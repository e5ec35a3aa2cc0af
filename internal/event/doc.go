// Package event provides the in-process event bus that connects the editing
// engine to its observers.
//
// Publishers create typed events with NewEvent and hand them to Bus.Publish.
// Delivery is synchronous and follows subscription order, so an observer has
// seen an event by the time Publish returns:
//
//	bus := event.NewBus()
//	sub, _ := bus.Subscribe(events.TopicCommandApplied, event.AsHandler(
//	    func(ctx context.Context, ev event.Event[events.CommandApplied]) error {
//	        fmt.Println(ev.Payload.Entry())
//	        return nil
//	    }))
//	defer bus.Unsubscribe(sub)
//
// Subscribers cannot affect the publisher. A handler that returns an error
// or panics is counted in Stats and reported to the bus error handler, and
// delivery continues with the next subscriber.
//
// Subscription patterns use the wildcards of package topic.
package event
