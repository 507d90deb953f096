package usecase

import (
	"context"

	"github.com/DRSN-tech/price-compare/internal/domain"
)

// SearchProvider получает сырые результаты поиска у внешнего API и декодирует их.
// Гостевой и авторизованный поиск отличаются только сессией.
type SearchProvider interface {
	FetchSearch(ctx context.Context, session *domain.Session, query string) ([]byte, error)
	DecodeSearch(query string, payload []byte) (*domain.SearchResultSet, error)
}

type AccountProvider interface {
	Login(ctx context.Context, username string, password string) (*domain.Session, error)
	Register(ctx context.Context, email string, password string, name string) (*domain.User, error)
	Me(ctx context.Context, session *domain.Session) (*domain.User, error)
}

type StoreDirectory interface {
	Stores(ctx context.Context) ([]domain.Store, error)
}

type ShoppingListStore interface {
	ShoppingLists(ctx context.Context, session *domain.Session) ([]domain.ShoppingList, error)
	ShoppingList(ctx context.Context, session *domain.Session, id string) (*domain.ShoppingList, error)
	CreateShoppingList(ctx context.Context, session *domain.Session, list *domain.ShoppingList) (*domain.ShoppingList, error)
	UpdateShoppingList(ctx context.Context, session *domain.Session, id string, list *domain.ShoppingList) (*domain.ShoppingList, error)
	DeleteShoppingList(ctx context.Context, session *domain.Session, id string) error
}

// EventPublisher публикует события о выполненных сравнениях.
type EventPublisher interface {
	PublishComparison(ctx context.Context, event *ComparisonEvent) error
}

// ChartsInfra сохраняет отрисованный график и выдаёт ссылку на него.
type ChartsInfra interface {
	ShareChart(ctx context.Context, chart *RenderedChart) (*domain.SharedChart, error)
}
