package dnd5e

import (
	"fmt"
	"net/http"

	apiDnd5e "github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"

	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
)

// srdAPI is the part of the upstream client we call
type srdAPI interface {
	GetSpell(key string) (*entities.Spell, error)
	ListSpells(input *apiDnd5e.ListSpellsInput) ([]*entities.ReferenceItem, error)
}

type client struct {
	client srdAPI
}

// Config holds configuration for the SRD client
type Config struct {
	HttpClient *http.Client
}

// New creates a client backed by dnd5eapi.co
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("cfg is required")
	}

	dndClient, err := apiDnd5e.NewDND5eAPI(&apiDnd5e.DND5eAPIConfig{
		Client: cfg.HttpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create D&D 5e API client: %w", err)
	}

	return &client{
		client: dndClient,
	}, nil
}

// ListSpellsByClass lists all spells available to a class
func (c *client) ListSpellsByClass(classKey string) ([]*SpellReference, error) {
	if classKey == "" {
		return nil, dnderr.InvalidArgument("class key is required")
	}

	refs, err := c.client.ListSpells(&apiDnd5e.ListSpellsInput{
		Class: classKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list spells for class %s: %w", classKey, err)
	}

	result := make([]*SpellReference, 0, len(refs))
	for _, ref := range refs {
		if ref == nil {
			continue
		}
		result = append(result, &SpellReference{
			Key:  ref.Key,
			Name: ref.Name,
		})
	}
	return result, nil
}

// GetSpell retrieves a spell by key
func (c *client) GetSpell(key string) (*Spell, error) {
	if key == "" {
		return nil, dnderr.InvalidArgument("spell key is required")
	}

	apiSpell, err := c.client.GetSpell(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get spell %s: %w", key, err)
	}
	if apiSpell == nil {
		return nil, dnderr.NotFoundf("spell '%s' not found in SRD", key)
	}

	return convertSpell(apiSpell), nil
}

func convertSpell(apiSpell *entities.Spell) *Spell {
	spell := &Spell{
		Key:   apiSpell.Key,
		Name:  apiSpell.Name,
		Level: apiSpell.SpellLevel,
	}

	if apiSpell.SpellSchool != nil {
		spell.School = apiSpell.SpellSchool.Name
	}

	if apiSpell.SpellDamage != nil && apiSpell.SpellDamage.SpellDamageType != nil {
		spell.DamageType = apiSpell.SpellDamage.SpellDamageType.Name
	}

	return spell
}
