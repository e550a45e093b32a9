package catalog

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/KirkDiggler/spellbook/internal/clients/dnd5e"
	"github.com/KirkDiggler/spellbook/internal/domain/spell"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
	"github.com/KirkDiggler/spellbook/internal/repositories/catalog"
)

// SourceSRD marks definitions imported from the D&D 5e SRD
const SourceSRD = "srd"

// manaPerLevel converts spell level to mana cost; cantrips are free
const manaPerLevel = 10

var damageElements = map[string]spell.Element{
	"fire":        spell.ElementFire,
	"cold":        spell.ElementIce,
	"lightning":   spell.ElementLightning,
	"thunder":     spell.ElementWind,
	"acid":        spell.ElementEarth,
	"bludgeoning": spell.ElementEarth,
	"piercing":    spell.ElementEarth,
	"poison":      spell.ElementEarth,
}

// ElementForDamage maps an SRD damage type to an element
func ElementForDamage(damageType string) (spell.Element, bool) {
	element, ok := damageElements[strings.ToLower(strings.TrimSpace(damageType))]
	return element, ok
}

// DefinitionFromSRD converts an SRD spell, reporting false for spells with no usable element
func DefinitionFromSRD(srd *dnd5e.Spell) (*catalog.Definition, bool) {
	if srd == nil || srd.Name == "" {
		return nil, false
	}

	element, ok := ElementForDamage(srd.DamageType)
	if !ok {
		return nil, false
	}

	level := srd.Level
	if level < 0 {
		level = 0
	}

	def := &catalog.Definition{
		Key:      srd.Key,
		Name:     srd.Name,
		Element:  element,
		ManaCost: level * manaPerLevel,
		Source:   SourceSRD,
	}
	if def.Key == "" {
		def.Key = catalog.KeyFor(srd.Name)
	}
	if srd.School != "" {
		def.Description = srd.School + " spell"
	}
	return def, true
}

func (s *service) ImportSRD(ctx context.Context, classes []string) (*ImportResult, error) {
	if s.srdClient == nil {
		return nil, dnderr.Internalf("SRD client is not configured")
	}
	if len(classes) == 0 {
		return nil, dnderr.InvalidArgument("at least one class is required")
	}

	// Classes share many spells; fetch each key once
	seen := make(map[string]bool)
	var keys []string
	for _, class := range classes {
		class = strings.ToLower(strings.TrimSpace(class))
		if class == "" {
			continue
		}

		refs, err := s.srdClient.ListSpellsByClass(class)
		if err != nil {
			return nil, dnderr.Wrapf(err, "failed to list %s spells", class)
		}

		for _, ref := range refs {
			if ref == nil || ref.Key == "" || seen[ref.Key] {
				continue
			}
			seen[ref.Key] = true
			keys = append(keys, ref.Key)
		}
	}
	sort.Strings(keys)

	result := &ImportResult{}
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		srd, err := s.srdClient.GetSpell(key)
		if err != nil {
			return result, dnderr.Wrapf(err, "failed to fetch spell '%s'", key)
		}

		def, ok := DefinitionFromSRD(srd)
		if !ok {
			result.Skipped++
			result.SkippedKeys = append(result.SkippedKeys, key)
			continue
		}

		if err := s.Add(ctx, def); err != nil {
			return result, err
		}
		result.Imported++
	}

	s.logger.Info("imported SRD spells",
		zap.Strings("classes", classes),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))
	return result, nil
}
