package spellbook_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/spellbook/internal/domain/spell"
	domain "github.com/KirkDiggler/spellbook/internal/domain/spellbook"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
	"github.com/KirkDiggler/spellbook/internal/events"
	"github.com/KirkDiggler/spellbook/internal/repositories/catalog"
	spellbookService "github.com/KirkDiggler/spellbook/internal/services/spellbook"
	mockuuid "github.com/KirkDiggler/spellbook/internal/uuid/mock"
)

type ServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	ctrl     *gomock.Controller
	uuidGen  *mockuuid.MockGenerator
	catalog  catalog.Repository
	bus      *events.Bus
	recorder *events.Recorder
	out      *bytes.Buffer
	svc      spellbookService.Service
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.uuidGen = mockuuid.NewMockGenerator(s.ctrl)
	s.catalog = catalog.NewInMemoryRepository()
	s.bus = events.NewBus(nil)
	s.recorder = events.NewRecorder(s.bus, "test",
		events.EventTypeBookCreated,
		events.EventTypeBookDeleted,
		events.EventTypeSpellLearned,
		events.EventTypeSpellCast,
		events.EventTypeManaRestored,
		events.EventTypeActionFailed,
	)
	s.out = &bytes.Buffer{}

	_, err := catalog.Seed(s.ctx, s.catalog, catalog.DefaultDefinitions())
	s.Require().NoError(err)

	s.svc = spellbookService.NewService(&spellbookService.ServiceConfig{
		Catalog:       s.catalog,
		UUIDGenerator: s.uuidGen,
		EventBus:      s.bus,
		Output:        s.out,
	})
}

func (s *ServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) createBasic(id string) *spellbookService.BookInfo {
	s.uuidGen.EXPECT().New().Return(id)
	info, err := s.svc.Create(s.ctx, &spellbookService.CreateInput{Owner: "merlin", Kind: domain.KindBasic})
	s.Require().NoError(err)
	return info
}

func (s *ServiceTestSuite) TestCreate_Basic() {
	info := s.createBasic("book-1")

	s.Equal(&spellbookService.BookInfo{
		ID:            "book-1",
		Owner:         "merlin",
		Kind:          domain.KindBasic,
		SpellCount:    0,
		MaxSpellCount: 5,
		CurrentMana:   50,
		MaxMana:       100,
		Spells:        []spell.Spell{},
	}, info)
	s.Equal([]events.EventType{events.EventTypeBookCreated}, s.recorder.Types())
}

func (s *ServiceTestSuite) TestCreate_Master() {
	s.uuidGen.EXPECT().New().Return("book-2")

	info, err := s.svc.Create(s.ctx, &spellbookService.CreateInput{
		Owner:     "morgana",
		Kind:      domain.KindMaster,
		Forbidden: spell.ElementIce,
		MaxSpells: 10,
	})

	s.Require().NoError(err)
	s.Equal(domain.KindMaster, info.Kind)
	s.Equal(5, info.MaxSpellCount)
	s.Equal(spell.ElementIce, info.Forbidden)
	s.Equal(100, info.CurrentMana)
	s.Equal(150, info.MaxMana)
}

func (s *ServiceTestSuite) TestCreate_MasterInvalidCapacity() {
	_, err := s.svc.Create(s.ctx, &spellbookService.CreateInput{
		Kind:      domain.KindMaster,
		Forbidden: spell.ElementIce,
		MaxSpells: 0,
	})

	s.True(dnderr.IsInvalidCapacity(err))
	s.Empty(s.recorder.Events())
}

func (s *ServiceTestSuite) TestCreate_InvalidInput() {
	_, err := s.svc.Create(s.ctx, nil)
	s.True(dnderr.IsInvalidArgument(err))

	_, err = s.svc.Create(s.ctx, &spellbookService.CreateInput{Kind: "grimoire"})
	s.True(dnderr.IsInvalidArgument(err))
}

func (s *ServiceTestSuite) TestLearnAndCast_FromCatalog() {
	s.createBasic("book-1")

	s.Require().NoError(s.svc.Learn(s.ctx, "book-1", "fireball"))
	s.Require().NoError(s.svc.Cast(s.ctx, "book-1", "Fireball"))
	s.Require().NoError(s.svc.Cast(s.ctx, "book-1", "Fireball"))

	err := s.svc.Cast(s.ctx, "book-1", "Fireball")
	s.True(dnderr.IsInsufficientMana(err))
	s.Equal("Not enough mana to cast Fireball!", err.Error())

	info, err := s.svc.Get(s.ctx, "book-1")
	s.Require().NoError(err)
	s.Equal(10, info.CurrentMana)
	s.Equal(1, info.SpellCount)
	s.Equal("Casted Fireball.\nCasted Fireball.\n", s.out.String())

	s.Equal([]events.EventType{
		events.EventTypeBookCreated,
		events.EventTypeSpellLearned,
		events.EventTypeSpellCast,
		events.EventTypeSpellCast,
		events.EventTypeActionFailed,
	}, s.recorder.Types())

	recorded := s.recorder.Events()
	s.Equal(50, recorded[2].ManaBefore)
	s.Equal(30, recorded[2].ManaAfter)
	s.Equal(20, recorded[2].ManaCost)
	s.Equal("Not enough mana to cast Fireball!", recorded[4].Reason)
	s.False(recorded[4].OccurredAt.IsZero())
}

func (s *ServiceTestSuite) TestLearn_UnknownCatalogKey() {
	s.createBasic("book-1")

	err := s.svc.Learn(s.ctx, "book-1", "wish")

	s.True(dnderr.IsNotFound(err))
	s.Equal([]events.EventType{
		events.EventTypeBookCreated,
		events.EventTypeActionFailed,
	}, s.recorder.Types())

	failed := s.recorder.Events()[1]
	s.Equal("book-1", failed.BookID)
	s.Equal("wish", failed.SpellName)
	s.Equal("failed to look up spell 'wish'", failed.Reason)
}

func (s *ServiceTestSuite) TestLearn_MasterForbidden() {
	s.uuidGen.EXPECT().New().Return("book-3")
	_, err := s.svc.Create(s.ctx, &spellbookService.CreateInput{
		Kind:      domain.KindMaster,
		Forbidden: spell.ElementFire,
		MaxSpells: 2,
	})
	s.Require().NoError(err)

	err = s.svc.Learn(s.ctx, "book-3", "meteor")
	s.True(dnderr.IsForbiddenElement(err))
	s.Equal("Fire is forbidden in the master spellbook!", dnderr.Message(err))

	s.Require().NoError(s.svc.Learn(s.ctx, "book-3", "gust"))
	s.Require().NoError(s.svc.Learn(s.ctx, "book-3", "frostbolt"))

	err = s.svc.Learn(s.ctx, "book-3", "stone-skin")
	s.True(dnderr.IsCapacityExceeded(err))
	s.Equal("The master spellbook is full!", dnderr.Message(err))
}

func (s *ServiceTestSuite) TestRestore() {
	s.createBasic("book-1")

	s.True(dnderr.IsInvalidAmount(s.svc.Restore(s.ctx, "book-1", 0)))
	s.Require().NoError(s.svc.Restore(s.ctx, "book-1", 500))

	info, err := s.svc.Get(s.ctx, "book-1")
	s.Require().NoError(err)
	s.Equal(100, info.CurrentMana)

	recorded := s.recorder.Events()
	last := recorded[len(recorded)-1]
	s.Equal(events.EventTypeManaRestored, last.Type)
	s.Equal(50, last.ManaBefore)
	s.Equal(100, last.ManaAfter)
}

func (s *ServiceTestSuite) TestPrint() {
	s.createBasic("book-1")
	var listing bytes.Buffer

	err := s.svc.Print(s.ctx, "book-1", &listing)
	s.True(dnderr.IsEmpty(err))
	s.Empty(listing.String())

	s.Require().NoError(s.svc.LearnSpell(s.ctx, "book-1", spell.MustNew("Gust", spell.ElementWind, 5)))
	s.Require().NoError(s.svc.Print(s.ctx, "book-1", &listing))
	s.Equal("Gust (Wind) - 5 mana.\nTotal spells: 1.\n", listing.String())

	s.True(dnderr.IsInvalidArgument(s.svc.Print(s.ctx, "book-1", nil)))
}

func (s *ServiceTestSuite) TestUnknownBook() {
	s.True(dnderr.IsNotFound(s.svc.Cast(s.ctx, "nope", "Fireball")))
	s.True(dnderr.IsNotFound(s.svc.Restore(s.ctx, "nope", 10)))
	s.True(dnderr.IsNotFound(s.svc.Learn(s.ctx, "nope", "fireball")))
	s.True(dnderr.IsNotFound(s.svc.Delete(s.ctx, "nope")))
	s.True(dnderr.IsInvalidArgument(s.svc.Cast(s.ctx, "", "Fireball")))

	_, err := s.svc.Get(s.ctx, "nope")
	s.True(dnderr.IsNotFound(err))
}

func (s *ServiceTestSuite) TestListAndDelete() {
	s.createBasic("book-1")
	s.createBasic("book-2")
	s.createBasic("book-3")

	s.Require().NoError(s.svc.Delete(s.ctx, "book-2"))

	books, err := s.svc.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(books, 2)
	s.Equal("book-1", books[0].ID)
	s.Equal("book-3", books[1].ID)
}

func (s *ServiceTestSuite) TestCreate_DuplicateID() {
	s.createBasic("book-1")
	s.uuidGen.EXPECT().New().Return("book-1")

	_, err := s.svc.Create(s.ctx, &spellbookService.CreateInput{})

	s.True(dnderr.IsAlreadyExists(err))
}

func (s *ServiceTestSuite) TestConcurrentCasts() {
	s.createBasic("book-1")
	s.Require().NoError(s.svc.LearnSpell(s.ctx, "book-1", spell.MustNew("Spark", spell.ElementLightning, 1)))

	var wg sync.WaitGroup
	errs := make([]error, 60)
	for i := range errs {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = s.svc.Cast(s.ctx, "book-1", "Spark")
		}()
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			s.True(dnderr.IsInsufficientMana(err), fmt.Sprintf("unexpected error: %v", err))
			failures++
		}
	}
	s.Equal(10, failures)

	info, err := s.svc.Get(s.ctx, "book-1")
	s.Require().NoError(err)
	s.Equal(0, info.CurrentMana)
}

func (s *ServiceTestSuite) TestConcurrentCasts_BooksShareOutput() {
	ids := []string{"book-1", "book-2", "book-3", "book-4"}
	for _, id := range ids {
		s.createBasic(id)
		s.Require().NoError(s.svc.LearnSpell(s.ctx, id, spell.MustNew("Spark", spell.ElementLightning, 1)))
		s.Require().NoError(s.svc.Restore(s.ctx, id, 50))
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		id := id
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.NoError(s.svc.Cast(s.ctx, id, "Spark"))
			}()
		}
	}
	wg.Wait()

	s.Equal(strings.Repeat("Casted Spark.\n", 400), s.out.String())
	for _, id := range ids {
		info, err := s.svc.Get(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(0, info.CurrentMana)
	}
}
