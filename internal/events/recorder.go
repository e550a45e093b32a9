package events

import (
	"sync"
)

// Recorder is a listener that keeps a copy of every event it sees
type Recorder struct {
	mu       sync.Mutex
	id       string
	priority int
	events   []Event
}

// NewRecorder creates a recorder and subscribes it to the given event types
func NewRecorder(bus *Bus, id string, types ...EventType) *Recorder {
	r := &Recorder{id: id, priority: 1000}
	for _, t := range types {
		bus.Subscribe(t, r)
	}
	return r
}

func (r *Recorder) HandleEvent(event *Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *Recorder) Priority() int { return r.priority }
func (r *Recorder) ID() string    { return r.id }

// Events returns the recorded events in arrival order
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns just the recorded event types
func (r *Recorder) Types() []EventType {
	events := r.Events()
	out := make([]EventType, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}
