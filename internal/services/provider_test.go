package services_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/spellbook/internal/events"
	"github.com/KirkDiggler/spellbook/internal/services"
	spellbookService "github.com/KirkDiggler/spellbook/internal/services/spellbook"
)

func TestNewProvider_SharesCatalog(t *testing.T) {
	ctx := context.Background()
	out := &bytes.Buffer{}
	provider := services.NewProvider(&services.ProviderConfig{Output: out})
	recorder := events.NewRecorder(provider.EventBus, "test", events.EventTypeSpellCast)

	_, err := provider.CatalogService.SeedDefaults(ctx)
	require.NoError(t, err)

	book, err := provider.SpellbookService.Create(ctx, &spellbookService.CreateInput{Owner: "merlin"})
	require.NoError(t, err)

	require.NoError(t, provider.SpellbookService.Learn(ctx, book.ID, "gust"))
	require.NoError(t, provider.SpellbookService.Cast(ctx, book.ID, "Gust"))

	assert.Equal(t, "Casted Gust.\n", out.String())
	assert.Equal(t, []events.EventType{events.EventTypeSpellCast}, recorder.Types())
}
