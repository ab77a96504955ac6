package progress

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/moniyo/financequest/internal/dailycap"
	"github.com/moniyo/financequest/internal/database/memory"
	"github.com/moniyo/financequest/internal/domain"
	"github.com/moniyo/financequest/internal/event"
	"github.com/moniyo/financequest/internal/quest"
	"github.com/moniyo/financequest/internal/repository"
)

// MockPublisher records published events
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	m.Called(ctx, evt)
}

func newMockPublisher() *MockPublisher {
	p := new(MockPublisher)
	p.On("PublishWithRetry", mock.Anything, mock.Anything).Return()
	return p
}

// Types returns the published event types in order
func (m *MockPublisher) Types() []event.Type {
	var types []event.Type
	for _, c := range m.Calls {
		types = append(types, c.Arguments.Get(1).(event.Event).Type)
	}
	return types
}

// OfType returns the published events of one type
func (m *MockPublisher) OfType(t event.Type) []event.Event {
	var out []event.Event
	for _, c := range m.Calls {
		if evt := c.Arguments.Get(1).(event.Event); evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
}

// Reset forgets recorded calls
func (m *MockPublisher) Reset() {
	m.Calls = nil
}

// clock is a settable time source
type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time          { return c.now }
func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testCatalog(t *testing.T) *quest.Catalog {
	t.Helper()
	c, err := quest.NewCatalog(domain.QuestCatalogConfig{Quests: []domain.Quest{
		{ID: "intro", Title: "Intro", Category: "budgeting", Difficulty: domain.DifficultyBeginner, StarterPack: true},
		{ID: "track", Title: "Track", Category: "budgeting", Difficulty: domain.DifficultyBeginner, StarterPack: true},
		{ID: "fund", Title: "Fund", Category: "savings", XPReward: 90, StarterPack: true},
		{ID: "big-quiz", Title: "Big quiz", Category: "budgeting", XP: 280},
		{ID: "advanced", Title: "Advanced", Category: "taxes", Difficulty: domain.DifficultyAdvanced},
		{ID: "cut-subscription", Title: "Cut a subscription", Category: "subscriptions",
			Difficulty: domain.DifficultyBeginner, Impact: &domain.QuestImpact{Amount: 12, Period: domain.PeriodMonth}},
		{ID: "adjust-tax-rate", Title: "Adjust tax rate", Category: "taxes",
			Difficulty: domain.DifficultyAdvanced, Impact: &domain.QuestImpact{Amount: 240, Period: domain.PeriodYear}},
	}})
	require.NoError(t, err)
	return c
}

type fixture struct {
	svc       Service
	store     *memory.Store
	publisher *MockPublisher
	clock     *clock
	ledger    *dailycap.MemoryLedger
}

type fixtureOpts struct {
	noLimiter bool
	ledger    dailycap.Ledger
	store     repository.Store
}

func newFixture(t *testing.T, opts ...func(*fixtureOpts)) *fixture {
	t.Helper()
	var o fixtureOpts
	for _, fn := range opts {
		fn(&o)
	}

	f := &fixture{
		store:     memory.NewStore(),
		publisher: newMockPublisher(),
		clock:     &clock{now: time.Date(2026, 4, 6, 10, 0, 0, 0, time.UTC)},
		ledger:    dailycap.NewMemoryLedger(),
	}

	var store repository.Store = f.store
	if o.store != nil {
		store = o.store
	}

	var limiter *dailycap.Limiter
	if !o.noLimiter {
		var ledger dailycap.Ledger = f.ledger
		if o.ledger != nil {
			ledger = o.ledger
		}
		limiter = dailycap.NewLimiter(ledger)
	}

	f.svc = NewService(store, testCatalog(t), limiter, f.publisher, WithClock(f.clock.Now))
	return f
}

func withoutLimiter(o *fixtureOpts) { o.noLimiter = true }

func withLedger(l dailycap.Ledger) func(*fixtureOpts) {
	return func(o *fixtureOpts) { o.ledger = l }
}

func withStore(s repository.Store) func(*fixtureOpts) {
	return func(o *fixtureOpts) { o.store = s }
}

func (f *fixture) initUser(t *testing.T, userID string) {
	t.Helper()
	_, err := f.svc.InitProgress(context.Background(), userID)
	require.NoError(t, err)
	f.publisher.Reset()
}

// brokenLedger fails every call
type brokenLedger struct{}

var errLedgerDown = errors.New("ledger down")

func (brokenLedger) Reserve(context.Context, dailycap.Bucket, int, int) (int, error) {
	return 0, errLedgerDown
}

func (brokenLedger) Release(context.Context, dailycap.Bucket, int) error {
	return errLedgerDown
}

func (brokenLedger) Used(context.Context, dailycap.Bucket) (int, error) {
	return 0, errLedgerDown
}

// usage reads today's daily cap counters from the fixture ledger
func (f *fixture) usage(t *testing.T, userID string) dailycap.Usage {
	t.Helper()
	u, err := dailycap.NewLimiter(f.ledger).Usage(context.Background(), userID, f.clock.Now())
	require.NoError(t, err)
	return u
}

// failingUpdateStore rejects every progress update
type failingUpdateStore struct {
	*memory.Store
	err error
}

func (s *failingUpdateStore) UpdateProgress(context.Context, string, repository.UpdateFunc) (*domain.UserProgress, error) {
	return nil, s.err
}

// failingSavingsStore rejects new savings events until healed
type failingSavingsStore struct {
	*memory.Store
	mu  sync.Mutex
	err error
}

func (s *failingSavingsStore) AddSavingsEvent(ctx context.Context, ev *domain.SavingsEvent) error {
	s.mu.Lock()
	err := s.err
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.Store.AddSavingsEvent(ctx, ev)
}

func (s *failingSavingsStore) heal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
}

// gatedListStore parks the next ListSavingsEvents call after arm until
// release is closed
type gatedListStore struct {
	*memory.Store
	armed   atomic.Bool
	entered chan struct{}
	release chan struct{}
}

func newGatedListStore() *gatedListStore {
	return &gatedListStore{
		Store:   memory.NewStore(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (s *gatedListStore) arm() { s.armed.Store(true) }

func (s *gatedListStore) ListSavingsEvents(ctx context.Context, userID string) ([]domain.SavingsEvent, error) {
	if s.armed.CompareAndSwap(true, false) {
		close(s.entered)
		<-s.release
	}
	return s.Store.ListSavingsEvents(ctx, userID)
}

func intPtr(v int) *int { return &v }
