package upstream

import (
	"context"
	"net/http"

	"github.com/DRSN-tech/price-compare/internal/domain"
)

func (c *Client) ShoppingLists(ctx context.Context, session *domain.Session) ([]domain.ShoppingList, error) {
	var lists []shoppingListModel
	if err := c.getJSON(ctx, shoppingListsPath, nil, session, &lists); err != nil {
		return nil, err
	}

	return toDomainShoppingLists(lists), nil
}

// ShoppingList возвращает список по id. Чужой список даёт e.ErrForbidden, отсутствующий e.ErrNotFound.
func (c *Client) ShoppingList(ctx context.Context, session *domain.Session, id string) (*domain.ShoppingList, error) {
	var list shoppingListModel
	if err := c.getJSON(ctx, shoppingListPath(id), nil, session, &list); err != nil {
		return nil, err
	}

	return toDomainShoppingList(list), nil
}

func (c *Client) CreateShoppingList(ctx context.Context, session *domain.Session, list *domain.ShoppingList) (*domain.ShoppingList, error) {
	var created shoppingListModel
	if err := c.sendJSON(ctx, http.MethodPost, shoppingListsPath, session, toWriteModel(list), &created); err != nil {
		return nil, err
	}

	return toDomainShoppingList(created), nil
}

// UpdateShoppingList полностью заменяет список.
func (c *Client) UpdateShoppingList(ctx context.Context, session *domain.Session, id string, list *domain.ShoppingList) (*domain.ShoppingList, error) {
	var updated shoppingListModel
	if err := c.sendJSON(ctx, http.MethodPut, shoppingListPath(id), session, toWriteModel(list), &updated); err != nil {
		return nil, err
	}

	return toDomainShoppingList(updated), nil
}

func (c *Client) DeleteShoppingList(ctx context.Context, session *domain.Session, id string) error {
	_, err := c.do(ctx, request{
		method:  http.MethodDelete,
		path:    shoppingListPath(id),
		session: session,
	})

	return err
}
