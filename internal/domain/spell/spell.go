package spell

import (
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
)

// Spell is a named effect with an element and a mana cost.
// Values are immutable once built; books copy them into their slots.
type Spell struct {
	name     string
	element  Element
	manaCost int
}

// New validates and builds a spell
func New(name string, element Element, manaCost int) (Spell, error) {
	if name == "" {
		return Spell{}, dnderr.InvalidArgument("spell name is required")
	}

	if !element.Valid() {
		return Spell{}, dnderr.InvalidArgumentf("unknown element '%s'", element).
			WithMeta("spell", name)
	}

	if manaCost < 0 {
		return Spell{}, dnderr.InvalidArgumentf("mana cost for %s cannot be negative", name).
			WithMeta("spell", name).
			WithMeta("mana_cost", manaCost)
	}

	return Spell{
		name:     name,
		element:  element,
		manaCost: manaCost,
	}, nil
}

// MustNew is New for fixed, known-good spells such as seeds and test fixtures
func MustNew(name string, element Element, manaCost int) Spell {
	s, err := New(name, element, manaCost)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Spell) Name() string     { return s.name }
func (s Spell) Element() Element { return s.element }
func (s Spell) ManaCost() int    { return s.manaCost }
