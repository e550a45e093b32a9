package dnd5e

import (
	"errors"
	"testing"

	apiDnd5e "github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
)

type fakeSRD struct {
	spells    map[string]*entities.Spell
	refs      []*entities.ReferenceItem
	listErr   error
	lastClass string
}

func (f *fakeSRD) GetSpell(key string) (*entities.Spell, error) {
	s, ok := f.spells[key]
	if !ok {
		return nil, errors.New("404")
	}
	return s, nil
}

func (f *fakeSRD) ListSpells(input *apiDnd5e.ListSpellsInput) ([]*entities.ReferenceItem, error) {
	f.lastClass = input.Class
	return f.refs, f.listErr
}

func TestClient_ListSpellsByClass(t *testing.T) {
	fake := &fakeSRD{
		refs: []*entities.ReferenceItem{
			{Key: "fire-bolt", Name: "Fire Bolt"},
			nil,
			{Key: "ray-of-frost", Name: "Ray of Frost"},
		},
	}
	c := &client{client: fake}

	refs, err := c.ListSpellsByClass("wizard")

	require.NoError(t, err)
	assert.Equal(t, "wizard", fake.lastClass)
	assert.Equal(t, []*SpellReference{
		{Key: "fire-bolt", Name: "Fire Bolt"},
		{Key: "ray-of-frost", Name: "Ray of Frost"},
	}, refs)
}

func TestClient_ListSpellsByClass_Errors(t *testing.T) {
	c := &client{client: &fakeSRD{listErr: errors.New("timeout")}}

	_, err := c.ListSpellsByClass("wizard")
	assert.ErrorContains(t, err, "failed to list spells for class wizard")

	_, err = c.ListSpellsByClass("")
	assert.True(t, dnderr.IsInvalidArgument(err))
}

func TestClient_GetSpell(t *testing.T) {
	fake := &fakeSRD{
		spells: map[string]*entities.Spell{
			"shield": {Key: "shield", Name: "Shield", SpellLevel: 1},
		},
	}
	c := &client{client: fake}

	spell, err := c.GetSpell("shield")

	require.NoError(t, err)
	assert.Equal(t, &Spell{Key: "shield", Name: "Shield", Level: 1}, spell)

	_, err = c.GetSpell("missing")
	assert.ErrorContains(t, err, "failed to get spell missing")

	_, err = c.GetSpell("")
	assert.True(t, dnderr.IsInvalidArgument(err))
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(nil)
	assert.True(t, dnderr.IsInvalidArgument(err))
}
