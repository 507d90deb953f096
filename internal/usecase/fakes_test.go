package usecase

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/pkg/e"
)

// fakeProvider отдаёт запрос как «сырой ответ», а DecodeSearch ищет набор по этому ответу.
type fakeProvider struct {
	sets     map[string]*domain.SearchResultSet
	calls    atomic.Int32
	sessions []string
	mu       sync.Mutex
	block    chan struct{}
	fetchErr error
}

func newFakeProvider(sets map[string]*domain.SearchResultSet) *fakeProvider {
	return &fakeProvider{sets: sets}
}

func (f *fakeProvider) FetchSearch(ctx context.Context, session *domain.Session, query string) ([]byte, error) {
	f.calls.Add(1)

	f.mu.Lock()
	f.sessions = append(f.sessions, session.AuthorizationHeader())
	f.mu.Unlock()

	if f.block != nil {
		<-f.block
	}

	if f.fetchErr != nil {
		return nil, f.fetchErr
	}

	return []byte(strings.ToLower(query)), nil
}

func (f *fakeProvider) DecodeSearch(query string, payload []byte) (*domain.SearchResultSet, error) {
	set, ok := f.sets[string(payload)]
	if !ok {
		return nil, e.ErrMalformedPayload
	}

	return set, nil
}

type fakeCache struct {
	mu    sync.Mutex
	data  map[string][]byte
	setCh chan string
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		data:  make(map[string][]byte),
		setCh: make(chan string, 10),
	}
}

func (c *fakeCache) GetSearch(ctx context.Context, query string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.data[query]
	return v, ok, nil
}

func (c *fakeCache) SetSearch(ctx context.Context, query string, payload []byte) error {
	c.mu.Lock()
	c.data[query] = payload
	c.mu.Unlock()

	c.setCh <- query
	return nil
}

func (c *fakeCache) DeleteSearch(ctx context.Context, query string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.data, query)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*ComparisonEvent
}

func (p *fakePublisher) PublishComparison(ctx context.Context, event *ComparisonEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) Events() []*ComparisonEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]*ComparisonEvent(nil), p.events...)
}

type fakeLists struct {
	lists   map[string]*domain.ShoppingList
	updated *domain.ShoppingList
}

func (f *fakeLists) ShoppingLists(ctx context.Context, session *domain.Session) ([]domain.ShoppingList, error) {
	out := make([]domain.ShoppingList, 0, len(f.lists))
	for _, l := range f.lists {
		out = append(out, *l)
	}

	return out, nil
}

func (f *fakeLists) ShoppingList(ctx context.Context, session *domain.Session, id string) (*domain.ShoppingList, error) {
	l, ok := f.lists[id]
	if !ok {
		return nil, e.ErrNotFound
	}

	return l, nil
}

func (f *fakeLists) CreateShoppingList(ctx context.Context, session *domain.Session, list *domain.ShoppingList) (*domain.ShoppingList, error) {
	list.ID = "new-list"
	return list, nil
}

func (f *fakeLists) UpdateShoppingList(ctx context.Context, session *domain.Session, id string, list *domain.ShoppingList) (*domain.ShoppingList, error) {
	if _, ok := f.lists[id]; !ok {
		return nil, e.ErrNotFound
	}

	list.ID = id
	f.updated = list
	return list, nil
}

func (f *fakeLists) DeleteShoppingList(ctx context.Context, session *domain.Session, id string) error {
	if _, ok := f.lists[id]; !ok {
		return e.ErrNotFound
	}

	delete(f.lists, id)
	return nil
}

type fakeAccounts struct{}

func (fakeAccounts) Login(ctx context.Context, username string, password string) (*domain.Session, error) {
	if password != "secret" {
		return nil, e.ErrUnauthorized
	}

	return domain.NewSession("token-"+username, "", nil), nil
}

func (fakeAccounts) Register(ctx context.Context, email string, password string, name string) (*domain.User, error) {
	return &domain.User{ID: "u1", Email: email, Name: name, CreatedAt: time.Now()}, nil
}

func (fakeAccounts) Me(ctx context.Context, session *domain.Session) (*domain.User, error) {
	return &domain.User{ID: "u1", Email: "shopper@example.com"}, nil
}

type fakeStores struct{}

func (fakeStores) Stores(ctx context.Context) ([]domain.Store, error) {
	return []domain.Store{{Name: "Tesco", URL: "https://www.tesco.com"}}, nil
}

type fakeChartsInfra struct {
	shared *RenderedChart
}

func (f *fakeChartsInfra) ShareChart(ctx context.Context, chart *RenderedChart) (*domain.SharedChart, error) {
	f.shared = chart
	return &domain.SharedChart{ObjectKey: "charts/" + chart.ProductID + ".svg", URL: "http://minio/charts"}, nil
}
