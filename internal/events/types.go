package events

import (
	"time"
)

// EventType represents the type of spellbook event
type EventType string

const (
	EventTypeBookCreated  EventType = "book.created"
	EventTypeBookDeleted  EventType = "book.deleted"
	EventTypeSpellLearned EventType = "spell.learned"
	EventTypeSpellCast    EventType = "spell.cast"
	EventTypeManaRestored EventType = "mana.restored"
	EventTypeActionFailed EventType = "action.failed"
)

// Event describes something that happened to a spellbook
type Event struct {
	Type      EventType
	BookID    string
	SpellName string
	Element   string
	ManaCost  int

	// ManaBefore and ManaAfter bracket the pool for cast and restore events
	ManaBefore int
	ManaAfter  int

	// Reason carries the failure message for EventTypeActionFailed
	Reason string

	OccurredAt time.Time

	cancelled bool
}

// Cancel stops the event from reaching lower priority listeners
func (e *Event) Cancel() { e.cancelled = true }

func (e *Event) IsCancelled() bool { return e.cancelled }
