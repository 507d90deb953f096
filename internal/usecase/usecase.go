package usecase

import (
	"context"

	"github.com/DRSN-tech/price-compare/internal/domain"
)

// ComparisonUC — сравнение цен по результатам поиска.
type ComparisonUC interface {
	Compare(ctx context.Context, req *CompareReq) (*CompareRes, error)
	ProductSeries(ctx context.Context, req *ProductSeriesReq) (*ProductSeriesRes, error)
}

// AccountUC — учётная запись, справочник магазинов и списки покупок.
type AccountUC interface {
	Login(ctx context.Context, req *LoginReq) (*domain.Session, error)
	Register(ctx context.Context, req *RegisterReq) (*domain.User, error)
	Me(ctx context.Context, session *domain.Session) (*domain.User, error)
	Stores(ctx context.Context) ([]domain.Store, error)
	ShoppingLists(ctx context.Context, session *domain.Session) ([]domain.ShoppingList, error)
	ShoppingList(ctx context.Context, session *domain.Session, id string) (*domain.ShoppingList, error)
	CreateShoppingList(ctx context.Context, session *domain.Session, req *ShoppingListReq) (*domain.ShoppingList, error)
	UpdateShoppingList(ctx context.Context, session *domain.Session, id string, req *ShoppingListReq) (*domain.ShoppingList, error)
	DeleteShoppingList(ctx context.Context, session *domain.Session, id string) error
	AddShoppingListItem(ctx context.Context, session *domain.Session, id string, item *ShoppingListItemReq) (*domain.ShoppingList, error)
}

// ChartUC — отрисовка и публикация графиков цен.
type ChartUC interface {
	RenderChart(ctx context.Context, req *ProductSeriesReq) (*RenderedChart, error)
	ShareChart(ctx context.Context, req *ProductSeriesReq) (*domain.SharedChart, error)
}
