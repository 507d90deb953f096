package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DRSN-tech/price-compare/internal/domain"
)

type searchResponse struct {
	Products []productModel          `json:"products"`
	Prices   map[string][]priceModel `json:"prices"`
}

type productModel struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Weight   *string `json:"weight"`
	Quantity *int    `json:"quantity"`
	Unit     *string `json:"unit"`
	ImageURL *string `json:"image_url"`
}

// priceModel хранит цену как сырой JSON: API отдаёт float, а парсинг в пенсы выполняется через decimal.
type priceModel struct {
	ProductID string          `json:"product_id"`
	Store     string          `json:"store"`
	Price     json.RawMessage `json:"price"`
}

type tokenModel struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userModel struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	CreatedAt apiTime `json:"created_at"`
}

type registerModel struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type storeModel struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type shoppingListModel struct {
	ID        string                  `json:"id"`
	Name      string                  `json:"name"`
	UserID    string                  `json:"user_id"`
	CreatedAt apiTime                 `json:"created_at"`
	UpdatedAt *apiTime                `json:"updated_at"`
	Items     []shoppingListItemModel `json:"items"`
}

type shoppingListItemModel struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	CreatedAt apiTime `json:"created_at"`
}

// shoppingListWriteModel — тело запроса создания и замены списка.
// user_id обязателен для API, но сервер подставляет владельца из токена.
type shoppingListWriteModel struct {
	Name   string                       `json:"name"`
	UserID string                       `json:"user_id"`
	Items  []shoppingListItemWriteModel `json:"items"`
}

type shoppingListItemWriteModel struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type errorModel struct {
	Detail json.RawMessage `json:"detail"`
}

// apiTime разбирает время с часовым поясом и без него: API отдаёт naive UTC.
type apiTime struct {
	time.Time
}

var apiTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func (t *apiTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}

	for _, layout := range apiTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}

	return fmt.Errorf("unsupported time format %q", s)
}

// CONVERTERS

func toDomainProduct(m productModel) domain.Product {
	product := domain.NewProduct(m.ID, m.Name, m.Category)
	product.Weight = m.Weight
	product.Quantity = m.Quantity
	product.Unit = m.Unit
	product.ImageURL = m.ImageURL

	return *product
}

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		CreatedAt: m.CreatedAt.Time,
	}
}

func toDomainStores(models []storeModel) []domain.Store {
	stores := make([]domain.Store, 0, len(models))
	for _, m := range models {
		stores = append(stores, domain.Store{Name: m.Name, URL: m.URL})
	}

	return stores
}

func toDomainShoppingList(m shoppingListModel) *domain.ShoppingList {
	items := make([]domain.ShoppingListItem, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, domain.ShoppingListItem{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			CreatedAt: it.CreatedAt.Time,
		})
	}

	list := &domain.ShoppingList{
		ID:        m.ID,
		Name:      m.Name,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt.Time,
		Items:     items,
	}
	if m.UpdatedAt != nil && !m.UpdatedAt.IsZero() {
		updated := m.UpdatedAt.Time
		list.UpdatedAt = &updated
	}

	return list
}

func toDomainShoppingLists(models []shoppingListModel) []domain.ShoppingList {
	lists := make([]domain.ShoppingList, 0, len(models))
	for _, m := range models {
		lists = append(lists, *toDomainShoppingList(m))
	}

	return lists
}

func toWriteModel(list *domain.ShoppingList) shoppingListWriteModel {
	items := make([]shoppingListItemWriteModel, 0, len(list.Items))
	for _, it := range list.Items {
		items = append(items, shoppingListItemWriteModel{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	return shoppingListWriteModel{
		Name:   list.Name,
		UserID: list.UserID,
		Items:  items,
	}
}
