package catalog

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/KirkDiggler/spellbook/internal/domain/spell"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
)

var validate = validator.New()

// Definition is a catalog entry describing a learnable spell
type Definition struct {
	Key         string        `yaml:"key" validate:"required"`
	Name        string        `yaml:"name" validate:"required"`
	Element     spell.Element `yaml:"element" validate:"required,oneof=Fire Ice Lightning Earth Wind"`
	ManaCost    int           `yaml:"mana_cost" validate:"gte=0"`
	Description string        `yaml:"description,omitempty"`
	Source      string        `yaml:"source,omitempty"`
}

// Validate checks the definition's struct tags
func (d *Definition) Validate() error {
	if d == nil {
		return dnderr.InvalidArgument("definition cannot be nil")
	}
	if err := validate.Struct(d); err != nil {
		return dnderr.WrapWithCode(err, dnderr.CodeValidation, "invalid spell definition").
			WithMeta("key", d.Key)
	}
	return nil
}

// ToSpell builds the domain spell this definition describes
func (d *Definition) ToSpell() (spell.Spell, error) {
	if d == nil {
		return spell.Spell{}, dnderr.InvalidArgument("definition cannot be nil")
	}
	return spell.New(d.Name, d.Element, d.ManaCost)
}

// KeyFor derives a catalog key from a spell name, e.g. "Chain Lightning" -> "chain-lightning"
func KeyFor(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteRune('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func copyDefinition(def *Definition) *Definition {
	c := *def
	return &c
}
