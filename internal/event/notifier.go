package event

import (
	"context"

	"github.com/dshills/linedit/internal/event/events"
)

// BusNotifier publishes command notifications on a bus.
// It satisfies history.Notifier.
type BusNotifier struct {
	bus *Bus
	ctx context.Context
}

// NewBusNotifier creates a notifier publishing on bus with ctx.
func NewBusNotifier(ctx context.Context, bus *Bus) *BusNotifier {
	if ctx == nil {
		ctx = context.Background()
	}
	return &BusNotifier{bus: bus, ctx: ctx}
}

// Notify publishes ev on events.TopicCommandApplied. Subscriber failures
// are handled by the bus and never reach the caller.
func (n *BusNotifier) Notify(ev events.CommandApplied) {
	_ = n.bus.Publish(n.ctx, NewEvent(events.TopicCommandApplied, ev, ev.Source))
}
