package spellbook

import (
	"github.com/KirkDiggler/spellbook/internal/domain/spell"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
)

const (
	masterMaxMana     = 150
	masterCurrentMana = 100
)

// MasterSpellbook is a Spellbook that refuses one element and may hold fewer than MaxSpells spells
type MasterSpellbook struct {
	Spellbook

	forbiddenElement spell.Element
	maxSpellCount    int
}

// NewMaster creates a master spellbook with 100 of 150 mana.
// maxSpells above MaxSpells is clamped; below 1 is rejected.
func NewMaster(forbidden spell.Element, maxSpells int, cfg *Config) (*MasterSpellbook, error) {
	if maxSpells < 1 {
		return nil, dnderr.InvalidCapacity("The master spellbook can hold at least 1 spell!").
			WithMeta("capacity", maxSpells)
	}

	if !forbidden.Valid() {
		return nil, dnderr.InvalidArgumentf("unknown element '%s'", forbidden)
	}

	if maxSpells > MaxSpells {
		maxSpells = MaxSpells
	}

	b := &MasterSpellbook{
		forbiddenElement: forbidden,
		maxSpellCount:    maxSpells,
	}
	b.init(cfg, masterMaxMana, masterCurrentMana)
	return b, nil
}

// LearnSpell checks, in order: same-name overwrite, forbidden element, capacity.
// An overwrite wins even when the replacement carries the forbidden element.
func (b *MasterSpellbook) LearnSpell(s spell.Spell) error {
	if s.Name() == "" {
		return dnderr.InvalidArgument("spell name is required")
	}

	if b.overwrite(s) {
		return nil
	}

	if s.Element() == b.forbiddenElement {
		return dnderr.ForbiddenElementf("%s is forbidden in the master spellbook!", s.Element()).
			WithMeta("spell", s.Name()).
			WithMeta("element", s.Element().String())
	}

	if b.spellCount == b.maxSpellCount {
		return dnderr.CapacityExceeded("The master spellbook is full!").
			WithMeta("spell", s.Name()).
			WithMeta("capacity", b.maxSpellCount)
	}

	b.push(s)
	return nil
}

func (b *MasterSpellbook) ForbiddenElement() spell.Element { return b.forbiddenElement }
func (b *MasterSpellbook) MaxSpellCount() int              { return b.maxSpellCount }
func (b *MasterSpellbook) Kind() Kind                      { return KindMaster }
