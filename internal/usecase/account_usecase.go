package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/pkg/e"
	"github.com/DRSN-tech/price-compare/pkg/logger"
)

// AccountUseCase — тонкая прослойка над внешним API: авторизация, магазины, списки покупок.
type AccountUseCase struct {
	accounts AccountProvider
	stores   StoreDirectory
	lists    ShoppingListStore
	logger   logger.Logger
}

func NewAccountUC(accounts AccountProvider, stores StoreDirectory, lists ShoppingListStore, logger logger.Logger) *AccountUseCase {
	return &AccountUseCase{
		accounts: accounts,
		stores:   stores,
		lists:    lists,
		logger:   logger,
	}
}

func (a *AccountUseCase) Login(ctx context.Context, req *LoginReq) (*domain.Session, error) {
	const op = "AccountUseCase.Login"

	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}

	session, err := a.accounts.Login(ctx, strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return session, nil
}

func (a *AccountUseCase) Register(ctx context.Context, req *RegisterReq) (*domain.User, error) {
	const op = "AccountUseCase.Register"

	email := strings.TrimSpace(req.Email)
	name := strings.TrimSpace(req.Name)
	if email == "" || name == "" || req.Password == "" {
		return nil, e.Wrap(op, e.ErrMissingFields)
	}

	user, err := a.accounts.Register(ctx, email, req.Password, name)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return user, nil
}

func (a *AccountUseCase) Me(ctx context.Context, session *domain.Session) (*domain.User, error) {
	const op = "AccountUseCase.Me"

	if err := requireSession(session); err != nil {
		return nil, e.Wrap(op, err)
	}

	user, err := a.accounts.Me(ctx, session)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return user, nil
}

// Stores возвращает справочник магазинов. Авторизация не требуется.
func (a *AccountUseCase) Stores(ctx context.Context) ([]domain.Store, error) {
	const op = "AccountUseCase.Stores"

	stores, err := a.stores.Stores(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return stores, nil
}

func (a *AccountUseCase) ShoppingLists(ctx context.Context, session *domain.Session) ([]domain.ShoppingList, error) {
	const op = "AccountUseCase.ShoppingLists"

	if err := requireSession(session); err != nil {
		return nil, e.Wrap(op, err)
	}

	lists, err := a.lists.ShoppingLists(ctx, session)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return lists, nil
}

func (a *AccountUseCase) ShoppingList(ctx context.Context, session *domain.Session, id string) (*domain.ShoppingList, error) {
	const op = "AccountUseCase.ShoppingList"

	if err := requireSession(session); err != nil {
		return nil, e.Wrap(op, err)
	}

	if strings.TrimSpace(id) == "" {
		return nil, e.Wrap(op, e.ErrNotFound)
	}

	list, err := a.lists.ShoppingList(ctx, session, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return list, nil
}

func (a *AccountUseCase) CreateShoppingList(ctx context.Context, session *domain.Session, req *ShoppingListReq) (*domain.ShoppingList, error) {
	const op = "AccountUseCase.CreateShoppingList"

	if err := requireSession(session); err != nil {
		return nil, e.Wrap(op, err)
	}

	list, err := buildShoppingList(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	created, err := a.lists.CreateShoppingList(ctx, session, list)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return created, nil
}

// UpdateShoppingList полностью заменяет название и позиции списка.
func (a *AccountUseCase) UpdateShoppingList(ctx context.Context, session *domain.Session, id string, req *ShoppingListReq) (*domain.ShoppingList, error) {
	const op = "AccountUseCase.UpdateShoppingList"

	if err := requireSession(session); err != nil {
		return nil, e.Wrap(op, err)
	}

	list, err := buildShoppingList(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	updated, err := a.lists.UpdateShoppingList(ctx, session, id, list)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return updated, nil
}

func (a *AccountUseCase) DeleteShoppingList(ctx context.Context, session *domain.Session, id string) error {
	const op = "AccountUseCase.DeleteShoppingList"

	if err := requireSession(session); err != nil {
		return e.Wrap(op, err)
	}

	if err := a.lists.DeleteShoppingList(ctx, session, id); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// AddShoppingListItem добавляет товар в список. Если товар уже есть, увеличивает количество.
func (a *AccountUseCase) AddShoppingListItem(ctx context.Context, session *domain.Session, id string, item *ShoppingListItemReq) (*domain.ShoppingList, error) {
	const op = "AccountUseCase.AddShoppingListItem"

	if err := validateItem(*item); err != nil {
		return nil, e.Wrap(op, err)
	}

	list, err := a.ShoppingList(ctx, session, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	qty := max(item.Quantity, 1)
	items := make([]ShoppingListItemReq, 0, len(list.Items)+1)
	merged := false
	for _, it := range list.Items {
		if it.ProductID == item.ProductID {
			it.Quantity += qty
			merged = true
		}
		items = append(items, ShoppingListItemReq{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	if !merged {
		items = append(items, ShoppingListItemReq{ProductID: item.ProductID, Quantity: qty})
	}

	updated, err := a.lists.UpdateShoppingList(ctx, session, id, toDomainShoppingList(list.Name, items))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return updated, nil
}

func requireSession(session *domain.Session) error {
	if session.IsGuest() {
		return e.ErrUnauthorized
	}

	return nil
}

// buildShoppingList проверяет запрос и собирает доменный список. Количество 0 заменяется на 1.
func buildShoppingList(req *ShoppingListReq) (*domain.ShoppingList, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, e.ErrListNameRequired
	}

	for _, item := range req.Items {
		if err := validateItem(item); err != nil {
			return nil, err
		}
	}

	return toDomainShoppingList(name, req.Items), nil
}

func validateItem(item ShoppingListItemReq) error {
	if strings.TrimSpace(item.ProductID) == "" {
		return e.ErrProductIDMissing
	}

	if item.Quantity < 0 {
		return e.ErrInvalidQuantity
	}

	return nil
}

func toDomainShoppingList(name string, items []ShoppingListItemReq) *domain.ShoppingList {
	domainItems := make([]domain.ShoppingListItem, 0, len(items))
	for _, item := range items {
		domainItems = append(domainItems, domain.NewShoppingListItem(strings.TrimSpace(item.ProductID), item.Quantity))
	}

	return domain.NewShoppingList(name, domainItems)
}
