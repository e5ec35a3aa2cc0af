// Package events defines the typed payloads published on the event bus.
//
// Each payload has a topic constant:
//
//	evt := event.NewEvent(events.TopicCommandApplied,
//	    events.CommandApplied{
//	        Source:      "notes.txt",
//	        Action:      events.ActionExecuted,
//	        Description: `append "hello"`,
//	    },
//	    "notes.txt",
//	)
//	bus.Publish(ctx, evt)
package events
