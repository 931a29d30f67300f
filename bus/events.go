// Package bus provides the single-threaded event loop that delivers terminal
// and timer events to their handlers.
package bus

import (
	"fmt"
	"sync/atomic"
	"time"
)

// EventType represents the type of event.
type EventType string

const (
	// EventUserInput carries a plain line typed by the operator.
	EventUserInput EventType = "user.input"
	// EventUserCommand carries a command line with its marker already stripped.
	EventUserCommand EventType = "user.command"
	// EventTimerTick is published once per timer interval.
	EventTimerTick EventType = "timer.tick"
	// EventSurfaceClosed is published when the operator closes the terminal.
	// Events queued before it are still delivered.
	EventSurfaceClosed EventType = "surface.closed"
)

// Event represents a bus event.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Source    string    `json:"source"`
	Text      string    `json:"text,omitempty"`
	Seq       uint64    `json:"seq"` // delivery number, set when the loop dispatches it
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent creates a new event.
func NewEvent(eventType EventType, source, text string) *Event {
	return &Event{
		ID:        generateEventID(),
		Type:      eventType,
		Source:    source,
		Text:      text,
		Timestamp: time.Now(),
	}
}

var eventCounter atomic.Int64

func generateEventID() string {
	n := eventCounter.Add(1)
	return fmt.Sprintf("evt-%d-%d", time.Now().UnixMilli(), n)
}
