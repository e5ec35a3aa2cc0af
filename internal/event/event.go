package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/linedit/internal/event/topic"
)

// Event is a typed event envelope.
// Events are immutable once created.
type Event[T any] struct {
	// Type is the topic the event is published on.
	Type topic.Topic

	// Payload contains the event-specific data.
	Payload T

	// Metadata contains standard event information.
	Metadata Metadata
}

// Metadata contains standard information attached to every event.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source identifies what published the event, usually a file path.
	Source string
}

// NewEvent creates a new event with the given topic and payload.
func NewEvent[T any](eventType topic.Topic, payload T, source string) Event[T] {
	return Event[T]{
		Type:    eventType,
		Payload: payload,
		Metadata: Metadata{
			ID:        generateID(),
			Timestamp: timeNow(),
			Source:    source,
		},
	}
}

// EventTopic returns the event's topic for type-erased handling.
func (e Event[T]) EventTopic() topic.Topic {
	return e.Type
}

// EventMetadata returns the event's metadata for type-erased handling.
func (e Event[T]) EventMetadata() Metadata {
	return e.Metadata
}

// TopicProvider is implemented by values the bus can route.
type TopicProvider interface {
	EventTopic() topic.Topic
}

// MetadataProvider is implemented by values that carry Metadata.
type MetadataProvider interface {
	EventMetadata() Metadata
}

func generateID() string {
	return uuid.New().String()
}

// timeNow is replaced in tests.
var timeNow = time.Now
