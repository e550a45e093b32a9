package events_test

import (
	"errors"
	"testing"

	"github.com/KirkDiggler/spellbook/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderListener struct {
	id       string
	priority int
	seen     *[]string
	cancel   bool
	err      error
}

func (l *orderListener) HandleEvent(event *events.Event) error {
	*l.seen = append(*l.seen, l.id)
	if l.cancel {
		event.Cancel()
	}
	return l.err
}

func (l *orderListener) Priority() int { return l.priority }
func (l *orderListener) ID() string    { return l.id }

func TestBus_PriorityOrder(t *testing.T) {
	bus := events.NewBus(nil)
	var seen []string

	bus.Subscribe(events.EventTypeSpellCast, &orderListener{id: "late", priority: 200, seen: &seen})
	bus.Subscribe(events.EventTypeSpellCast, &orderListener{id: "early", priority: 10, seen: &seen})
	bus.Subscribe(events.EventTypeSpellCast, &orderListener{id: "middle", priority: 100, seen: &seen})

	err := bus.Emit(&events.Event{Type: events.EventTypeSpellCast, SpellName: "Fireball"})

	require.NoError(t, err)
	assert.Equal(t, []string{"early", "middle", "late"}, seen)
}

func TestBus_CancelStopsPropagation(t *testing.T) {
	bus := events.NewBus(nil)
	var seen []string

	bus.Subscribe(events.EventTypeSpellLearned, &orderListener{id: "guard", priority: 1, seen: &seen, cancel: true})
	bus.Subscribe(events.EventTypeSpellLearned, &orderListener{id: "after", priority: 2, seen: &seen})

	require.NoError(t, bus.Emit(&events.Event{Type: events.EventTypeSpellLearned}))
	assert.Equal(t, []string{"guard"}, seen)
}

func TestBus_ListenerError(t *testing.T) {
	bus := events.NewBus(nil)
	var seen []string
	bus.Subscribe(events.EventTypeManaRestored, &orderListener{id: "broken", seen: &seen, err: errors.New("nope")})

	err := bus.Emit(&events.Event{Type: events.EventTypeManaRestored})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listener broken failed")
}

func TestBus_UnsubscribeAndClear(t *testing.T) {
	bus := events.NewBus(nil)
	var seen []string
	bus.Subscribe(events.EventTypeSpellCast, &orderListener{id: "a", seen: &seen})
	bus.Subscribe(events.EventTypeSpellCast, &orderListener{id: "b", priority: 1, seen: &seen})

	bus.Unsubscribe(events.EventTypeSpellCast, "a")
	require.NoError(t, bus.Emit(&events.Event{Type: events.EventTypeSpellCast}))
	assert.Equal(t, []string{"b"}, seen)

	bus.Clear()
	require.NoError(t, bus.Emit(&events.Event{Type: events.EventTypeSpellCast}))
	assert.Equal(t, []string{"b"}, seen)
}

func TestRecorder(t *testing.T) {
	bus := events.NewBus(nil)
	rec := events.NewRecorder(bus, "rec", events.EventTypeSpellCast, events.EventTypeManaRestored)

	require.NoError(t, bus.Emit(&events.Event{Type: events.EventTypeSpellCast, SpellName: "Gust"}))
	require.NoError(t, bus.Emit(&events.Event{Type: events.EventTypeBookCreated}))
	require.NoError(t, bus.Emit(&events.Event{Type: events.EventTypeManaRestored, ManaAfter: 60}))

	assert.Equal(t, []events.EventType{events.EventTypeSpellCast, events.EventTypeManaRestored}, rec.Types())
	assert.Equal(t, "Gust", rec.Events()[0].SpellName)
	assert.Nil(t, bus.Emit(nil))
}
