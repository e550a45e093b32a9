package dnd5e

//go:generate mockgen -destination=mock/mock_client.go -package=mockdnd5e -source=interface.go

// Client is the slice of the D&D 5e SRD API the catalog importer needs
type Client interface {
	// ListSpellsByClass lists the spells available to a class
	ListSpellsByClass(classKey string) ([]*SpellReference, error)

	// GetSpell retrieves a spell by key
	GetSpell(key string) (*Spell, error)
}

// SpellReference identifies a spell in a listing
type SpellReference struct {
	Key  string
	Name string
}

// Spell is the subset of SRD spell data the catalog cares about
type Spell struct {
	Key        string
	Name       string
	Level      int // 0 for cantrips
	School     string
	DamageType string // empty when the spell deals no damage
}
