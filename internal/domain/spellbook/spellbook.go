package spellbook

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/KirkDiggler/spellbook/internal/domain/spell"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
)

const (
	defaultMaxMana     = 100
	defaultCurrentMana = 50
)

// Config holds optional settings shared by both spellbook variants
type Config struct {
	// Output receives cast announcements and spell listings (default: os.Stdout)
	Output io.Writer
}

// Spellbook stores up to MaxSpells spells and a mana pool
type Spellbook struct {
	spells      [MaxSpells]spell.Spell
	spellCount  int
	maxMana     int
	currentMana int
	out         io.Writer
}

// New creates a basic spellbook with 50 of 100 mana
func New(cfg *Config) *Spellbook {
	b := &Spellbook{}
	b.init(cfg, defaultMaxMana, defaultCurrentMana)
	return b
}

func (b *Spellbook) init(cfg *Config, maxMana, currentMana int) {
	b.maxMana = maxMana
	b.currentMana = currentMana
	b.out = os.Stdout
	if cfg != nil && cfg.Output != nil {
		b.out = cfg.Output
	}
}

// LearnSpell stores s in the next free slot.
// A learned spell with the same name is overwritten in place, even when the book is full.
func (b *Spellbook) LearnSpell(s spell.Spell) error {
	if s.Name() == "" {
		return dnderr.InvalidArgument("spell name is required")
	}

	if b.overwrite(s) {
		return nil
	}

	if b.spellCount == MaxSpells {
		return dnderr.CapacityExceeded("The spellbook is full!").
			WithMeta("spell", s.Name()).
			WithMeta("capacity", MaxSpells)
	}

	b.push(s)
	return nil
}

// CastSpell spends the named spell's mana cost and writes "Casted <name>."
func (b *Spellbook) CastSpell(name string) error {
	i := b.indexOf(name)
	if i < 0 {
		return dnderr.SpellNotFoundf("Spell %s not learned!", name).
			WithMeta("spell", name)
	}

	cost := b.spells[i].ManaCost()
	if b.currentMana < cost {
		return dnderr.InsufficientManaf("Not enough mana to cast %s!", name).
			WithMeta("spell", name).
			WithMeta("mana_cost", cost).
			WithMeta("current_mana", b.currentMana)
	}

	if _, err := fmt.Fprintf(b.out, "Casted %s.\n", name); err != nil {
		return dnderr.Wrapf(err, "failed to announce cast of %s", name)
	}

	b.currentMana -= cost
	return nil
}

// PrintSpells writes the spell listing to the book's output
func (b *Spellbook) PrintSpells() error {
	return b.WriteSpells(b.out)
}

// WriteSpells writes one line per learned spell followed by a total.
// Nothing is written when the book is empty.
func (b *Spellbook) WriteSpells(w io.Writer) error {
	if b.spellCount == 0 {
		return dnderr.Empty("Spellbook is empty!")
	}

	var buf bytes.Buffer
	for _, s := range b.spells[:b.spellCount] {
		fmt.Fprintf(&buf, "%s (%s) - %d mana.\n", s.Name(), s.Element(), s.ManaCost())
	}
	fmt.Fprintf(&buf, "Total spells: %d.\n", b.spellCount)

	if _, err := w.Write(buf.Bytes()); err != nil {
		return dnderr.Wrap(err, "failed to write spell list")
	}
	return nil
}

// RestoreMana adds amount to the pool without exceeding MaxMana
func (b *Spellbook) RestoreMana(amount int) error {
	if amount <= 0 {
		return dnderr.InvalidAmount("Restore amount must be positive!").
			WithMeta("amount", amount)
	}

	// compare before adding so huge amounts cannot overflow
	if amount >= b.maxMana-b.currentMana {
		b.currentMana = b.maxMana
		return nil
	}
	b.currentMana += amount
	return nil
}

func (b *Spellbook) SpellCount() int  { return b.spellCount }
func (b *Spellbook) CurrentMana() int { return b.currentMana }
func (b *Spellbook) MaxMana() int     { return b.maxMana }
func (b *Spellbook) Kind() Kind       { return KindBasic }

// Spells returns a copy of the learned spells in slot order
func (b *Spellbook) Spells() []spell.Spell {
	out := make([]spell.Spell, b.spellCount)
	copy(out, b.spells[:b.spellCount])
	return out
}

func (b *Spellbook) indexOf(name string) int {
	for i := 0; i < b.spellCount; i++ {
		if b.spells[i].Name() == name {
			return i
		}
	}
	return -1
}

// overwrite replaces a learned spell sharing s's name and reports whether it did
func (b *Spellbook) overwrite(s spell.Spell) bool {
	i := b.indexOf(s.Name())
	if i < 0 {
		return false
	}
	b.spells[i] = s
	return true
}

func (b *Spellbook) push(s spell.Spell) {
	b.spells[b.spellCount] = s
	b.spellCount++
}
