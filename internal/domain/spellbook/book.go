package spellbook

import (
	"io"

	"github.com/KirkDiggler/spellbook/internal/domain/spell"
)

// MaxSpells is the number of slots every spellbook is built with
const MaxSpells = 5

// Kind identifies which spellbook variant a Book is
type Kind string

const (
	KindBasic  Kind = "basic"
	KindMaster Kind = "master"
)

// Book is the surface shared by Spellbook and MasterSpellbook
type Book interface {
	// LearnSpell stores s, overwriting any learned spell with the same name
	LearnSpell(s spell.Spell) error

	// CastSpell spends the named spell's cost and announces the cast
	CastSpell(name string) error

	// PrintSpells lists every learned spell to the book's output
	PrintSpells() error

	// WriteSpells lists every learned spell to w
	WriteSpells(w io.Writer) error

	// RestoreMana refills the pool by amount, capped at MaxMana
	RestoreMana(amount int) error

	SpellCount() int
	CurrentMana() int
	MaxMana() int

	// Spells returns a copy of the learned spells in slot order
	Spells() []spell.Spell

	Kind() Kind
}

var (
	_ Book = (*Spellbook)(nil)
	_ Book = (*MasterSpellbook)(nil)
)
