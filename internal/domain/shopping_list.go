package domain

import "time"

// ShoppingList описывает сохранённый список покупок пользователя
type ShoppingList struct {
	ID        string
	Name      string
	UserID    string
	CreatedAt time.Time
	UpdatedAt *time.Time
	Items     []ShoppingListItem
}

// ShoppingListItem — позиция списка покупок
type ShoppingListItem struct {
	ID        string
	ProductID string
	Quantity  int
	CreatedAt time.Time
}

func NewShoppingList(name string, items []ShoppingListItem) *ShoppingList {
	return &ShoppingList{
		Name:  name,
		Items: items,
	}
}

func NewShoppingListItem(productID string, quantity int) ShoppingListItem {
	if quantity == 0 {
		quantity = 1
	}

	return ShoppingListItem{
		ProductID: productID,
		Quantity:  quantity,
	}
}
