package event

import (
	"sync/atomic"

	"github.com/dshills/linedit/internal/event/topic"
)

// Subscription is a handler registered for a topic pattern.
type Subscription struct {
	id        string
	pattern   topic.Topic
	handler   Handler
	cancelled atomic.Bool
}

func newSubscription(pattern topic.Topic, handler Handler) *Subscription {
	return &Subscription{
		id:      generateID(),
		pattern: pattern,
		handler: handler,
	}
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Topic returns the subscribed topic pattern.
func (s *Subscription) Topic() topic.Topic {
	return s.pattern
}

// IsActive reports whether the subscription still receives events.
func (s *Subscription) IsActive() bool {
	return !s.cancelled.Load()
}

func (s *Subscription) matches(t topic.Topic) bool {
	return s.IsActive() && t.Matches(s.pattern)
}
