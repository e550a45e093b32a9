package spellbook

import (
	"context"
	"io"

	"github.com/KirkDiggler/spellbook/internal/domain/spell"
	domain "github.com/KirkDiggler/spellbook/internal/domain/spellbook"
)

// Service manages live spellbooks for the lifetime of the process
type Service interface {
	// Create builds a new basic or master spellbook
	Create(ctx context.Context, input *CreateInput) (*BookInfo, error)

	// Get returns a snapshot of a book
	Get(ctx context.Context, bookID string) (*BookInfo, error)

	// List returns snapshots of every book, oldest first
	List(ctx context.Context) ([]*BookInfo, error)

	// Delete discards a book
	Delete(ctx context.Context, bookID string) error

	// Learn looks a spell up in the catalog and teaches it to the book
	Learn(ctx context.Context, bookID, catalogKey string) error

	// LearnSpell teaches an already built spell to the book
	LearnSpell(ctx context.Context, bookID string, s spell.Spell) error

	// Cast casts a learned spell by name
	Cast(ctx context.Context, bookID, spellName string) error

	// Restore refills the book's mana
	Restore(ctx context.Context, bookID string, amount int) error

	// Print writes the book's spell listing to w
	Print(ctx context.Context, bookID string, w io.Writer) error
}

// CreateInput contains data for creating a spellbook
type CreateInput struct {
	Owner string
	Kind  domain.Kind

	// Forbidden and MaxSpells only apply to master spellbooks
	Forbidden spell.Element
	MaxSpells int

	// Output receives cast announcements (default: the service's output)
	Output io.Writer
}

// BookInfo is a read-only snapshot of a spellbook
type BookInfo struct {
	ID            string
	Owner         string
	Kind          domain.Kind
	SpellCount    int
	MaxSpellCount int
	CurrentMana   int
	MaxMana       int
	Forbidden     spell.Element // ElementNone for basic books
	Spells        []spell.Spell
}
