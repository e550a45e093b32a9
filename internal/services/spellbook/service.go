package spellbook

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/spellbook/internal/domain/spell"
	domain "github.com/KirkDiggler/spellbook/internal/domain/spellbook"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
	"github.com/KirkDiggler/spellbook/internal/events"
	"github.com/KirkDiggler/spellbook/internal/repositories/catalog"
	"github.com/KirkDiggler/spellbook/internal/uuid"
)

// entry guards one book; books never share state so each gets its own lock
type entry struct {
	mu    sync.RWMutex
	id    string
	owner string
	book  domain.Book
}

type service struct {
	mu      sync.RWMutex
	books   map[string]*entry
	order   []string
	catalog catalog.Repository
	uuidGen uuid.Generator
	bus     *events.Bus
	output  io.Writer
	logger  *zap.Logger
	now     func() time.Time
}

// ServiceConfig holds configuration for the spellbook service
type ServiceConfig struct {
	Catalog       catalog.Repository
	UUIDGenerator uuid.Generator
	EventBus      *events.Bus
	Output        io.Writer
	Logger        *zap.Logger
}

// NewService creates a new spellbook service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig cannot be nil")
	}
	if cfg.Catalog == nil {
		panic("catalog repository is required")
	}

	svc := &service{
		books:   make(map[string]*entry),
		catalog: cfg.Catalog,
		uuidGen: cfg.UUIDGenerator,
		bus:     cfg.EventBus,
		output:  cfg.Output,
		logger:  cfg.Logger,
		now:     time.Now,
	}

	if svc.uuidGen == nil {
		svc.uuidGen = uuid.NewGoogleUUIDGenerator()
	}
	if svc.bus == nil {
		svc.bus = events.NewBus(cfg.Logger)
	}
	if svc.output == nil {
		svc.output = os.Stdout
	}
	// books created without their own output all write here
	svc.output = &lockedWriter{w: svc.output}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}

	return svc
}

// Create builds a new basic or master spellbook
func (s *service) Create(ctx context.Context, input *CreateInput) (*BookInfo, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}

	bookCfg := &domain.Config{Output: input.Output}
	if bookCfg.Output == nil {
		bookCfg.Output = s.output
	}

	var book domain.Book
	switch input.Kind {
	case domain.KindBasic, "":
		book = domain.New(bookCfg)
	case domain.KindMaster:
		master, err := domain.NewMaster(input.Forbidden, input.MaxSpells, bookCfg)
		if err != nil {
			return nil, err
		}
		book = master
	default:
		return nil, dnderr.InvalidArgumentf("unknown spellbook kind '%s'", input.Kind)
	}

	e := &entry{
		id:    s.uuidGen.New(),
		owner: input.Owner,
		book:  book,
	}

	s.mu.Lock()
	if _, exists := s.books[e.id]; exists {
		s.mu.Unlock()
		return nil, dnderr.AlreadyExistsf("spellbook with ID '%s' already exists", e.id)
	}
	s.books[e.id] = e
	s.order = append(s.order, e.id)
	s.mu.Unlock()

	s.logger.Info("created spellbook",
		zap.String("book_id", e.id),
		zap.String("owner", e.owner),
		zap.String("kind", string(book.Kind())))

	s.emit(&events.Event{Type: events.EventTypeBookCreated, BookID: e.id, ManaAfter: book.CurrentMana()})

	e.mu.RLock()
	defer e.mu.RUnlock()
	return snapshot(e), nil
}

// Get returns a snapshot of a book
func (s *service) Get(ctx context.Context, bookID string) (*BookInfo, error) {
	e, err := s.lookup(bookID)
	if err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	return snapshot(e), nil
}

// List returns snapshots of every book, oldest first
func (s *service) List(ctx context.Context) ([]*BookInfo, error) {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.order))
	for _, id := range s.order {
		entries = append(entries, s.books[id])
	}
	s.mu.RUnlock()

	result := make([]*BookInfo, 0, len(entries))
	for _, e := range entries {
		e.mu.RLock()
		result = append(result, snapshot(e))
		e.mu.RUnlock()
	}
	return result, nil
}

// Delete discards a book
func (s *service) Delete(ctx context.Context, bookID string) error {
	if bookID == "" {
		return dnderr.InvalidArgument("book ID is required")
	}

	s.mu.Lock()
	if _, exists := s.books[bookID]; !exists {
		s.mu.Unlock()
		return notFound(bookID)
	}
	delete(s.books, bookID)
	for i, id := range s.order {
		if id == bookID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.emit(&events.Event{Type: events.EventTypeBookDeleted, BookID: bookID})
	return nil
}

// Learn looks a spell up in the catalog and teaches it to the book
func (s *service) Learn(ctx context.Context, bookID, catalogKey string) error {
	if _, err := s.lookup(bookID); err != nil {
		return err
	}

	failed := &events.Event{
		Type:      events.EventTypeSpellLearned,
		BookID:    bookID,
		SpellName: catalogKey,
	}

	def, err := s.catalog.Get(ctx, catalogKey)
	if err != nil {
		return s.finish(failed, dnderr.Wrapf(err, "failed to look up spell '%s'", catalogKey))
	}

	sp, err := def.ToSpell()
	if err != nil {
		return s.finish(failed, dnderr.Wrapf(err, "catalog entry '%s' is not a valid spell", catalogKey))
	}

	return s.LearnSpell(ctx, bookID, sp)
}

// LearnSpell teaches an already built spell to the book
func (s *service) LearnSpell(ctx context.Context, bookID string, sp spell.Spell) error {
	e, err := s.lookup(bookID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	err = e.book.LearnSpell(sp)
	mana := e.book.CurrentMana()
	e.mu.Unlock()

	event := &events.Event{
		Type:       events.EventTypeSpellLearned,
		BookID:     bookID,
		SpellName:  sp.Name(),
		Element:    sp.Element().String(),
		ManaCost:   sp.ManaCost(),
		ManaBefore: mana,
		ManaAfter:  mana,
	}
	return s.finish(event, err)
}

// Cast casts a learned spell by name
func (s *service) Cast(ctx context.Context, bookID, spellName string) error {
	e, err := s.lookup(bookID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	before := e.book.CurrentMana()
	err = e.book.CastSpell(spellName)
	after := e.book.CurrentMana()
	e.mu.Unlock()

	event := &events.Event{
		Type:       events.EventTypeSpellCast,
		BookID:     bookID,
		SpellName:  spellName,
		ManaCost:   before - after,
		ManaBefore: before,
		ManaAfter:  after,
	}
	return s.finish(event, err)
}

// Restore refills the book's mana
func (s *service) Restore(ctx context.Context, bookID string, amount int) error {
	e, err := s.lookup(bookID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	before := e.book.CurrentMana()
	err = e.book.RestoreMana(amount)
	after := e.book.CurrentMana()
	e.mu.Unlock()

	event := &events.Event{
		Type:       events.EventTypeManaRestored,
		BookID:     bookID,
		ManaBefore: before,
		ManaAfter:  after,
	}
	return s.finish(event, err)
}

// Print writes the book's spell listing to w
func (s *service) Print(ctx context.Context, bookID string, w io.Writer) error {
	if w == nil {
		return dnderr.InvalidArgument("writer cannot be nil")
	}

	e, err := s.lookup(bookID)
	if err != nil {
		return err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.book.WriteSpells(w)
}

func (s *service) lookup(bookID string) (*entry, error) {
	if bookID == "" {
		return nil, dnderr.InvalidArgument("book ID is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.books[bookID]
	if !exists {
		return nil, notFound(bookID)
	}
	return e, nil
}

// finish publishes the outcome of a mutating call and hands back its error
func (s *service) finish(event *events.Event, err error) error {
	event.OccurredAt = s.now()

	if err != nil {
		s.logger.Debug("spellbook action failed",
			zap.String("book_id", event.BookID),
			zap.String("action", string(event.Type)),
			zap.String("code", string(dnderr.GetCode(err))),
			zap.String("reason", dnderr.Message(err)))

		event.Type = events.EventTypeActionFailed
		event.Reason = dnderr.Message(err)
		s.emit(event)
		return err
	}

	s.emit(event)
	return nil
}

func (s *service) emit(event *events.Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now()
	}
	if err := s.bus.Emit(event); err != nil {
		s.logger.Warn("failed to emit event",
			zap.String("event", string(event.Type)),
			zap.Error(err))
	}
}

// lockedWriter serializes writes from books that share one writer
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func notFound(bookID string) error {
	return dnderr.NotFoundf("spellbook with ID '%s' not found", bookID).
		WithMeta("book_id", bookID)
}

func snapshot(e *entry) *BookInfo {
	info := &BookInfo{
		ID:            e.id,
		Owner:         e.owner,
		Kind:          e.book.Kind(),
		SpellCount:    e.book.SpellCount(),
		MaxSpellCount: domain.MaxSpells,
		CurrentMana:   e.book.CurrentMana(),
		MaxMana:       e.book.MaxMana(),
		Spells:        e.book.Spells(),
	}

	if master, ok := e.book.(*domain.MasterSpellbook); ok {
		info.MaxSpellCount = master.MaxSpellCount()
		info.Forbidden = master.ForbiddenElement()
	}
	return info
}
