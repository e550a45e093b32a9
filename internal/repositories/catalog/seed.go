package catalog

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/spellbook/internal/domain/spell"
)

// SourceBuiltin marks definitions shipped with the binary
const SourceBuiltin = "builtin"

// DefaultDefinitions returns the built-in starter catalog
func DefaultDefinitions() []*Definition {
	defs := []*Definition{
		{Name: "Fireball", Element: spell.ElementFire, ManaCost: 20, Description: "A roaring sphere of flame."},
		{Name: "Frostbolt", Element: spell.ElementIce, ManaCost: 15, Description: "A shard of ice that slows its target."},
		{Name: "Chain Lightning", Element: spell.ElementLightning, ManaCost: 30, Description: "Arcs between nearby foes."},
		{Name: "Stone Skin", Element: spell.ElementEarth, ManaCost: 10, Description: "Hardens the caster's skin."},
		{Name: "Gust", Element: spell.ElementWind, ManaCost: 5, Description: "A sudden push of air."},
		{Name: "Meteor", Element: spell.ElementFire, ManaCost: 60, Description: "Calls down a burning rock."},
		{Name: "Blizzard", Element: spell.ElementIce, ManaCost: 45, Description: "Freezing storm over an area."},
	}
	for _, def := range defs {
		def.Key = KeyFor(def.Name)
		def.Source = SourceBuiltin
	}
	return defs
}

type yamlFile struct {
	Spells []*Definition `yaml:"spells"`
}

// LoadYAML parses a document of the form
//
//	spells:
//	  - name: Fireball
//	    element: Fire
//	    mana_cost: 20
//
// Missing keys are derived from the name. Every entry is validated.
func LoadYAML(r io.Reader, source string) ([]*Definition, error) {
	var file yamlFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to decode spell file: %w", err)
	}

	for i, def := range file.Spells {
		if def == nil {
			return nil, fmt.Errorf("spell entry %d is empty", i)
		}
		if def.Key == "" {
			def.Key = KeyFor(def.Name)
		}
		if def.Source == "" {
			def.Source = source
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("spell entry %d (%s): %w", i, def.Name, err)
		}
	}

	return file.Spells, nil
}

// Seed stores every definition, stopping at the first failure
func Seed(ctx context.Context, repo Repository, defs []*Definition) (int, error) {
	for i, def := range defs {
		if err := repo.Put(ctx, def); err != nil {
			return i, fmt.Errorf("failed to seed %s: %w", def.Key, err)
		}
	}
	return len(defs), nil
}
