package http

import (
	"time"

	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/internal/pricing"
	"github.com/DRSN-tech/price-compare/internal/render"
	"github.com/DRSN-tech/price-compare/internal/usecase"
)

// REQUESTS

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type ShoppingListRequest struct {
	Name  string                    `json:"name"`
	Items []ShoppingListItemRequest `json:"items"`
}

type ShoppingListItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type ChartRequest struct {
	Query     string `json:"query"`
	ProductID string `json:"product_id"`
}

// RESPONSES

type MessageResponse struct {
	Message string `json:"message"`
}

// PricePointResponse — цена магазина. Price отформатирована, Pence — исходное значение в пенсах.
type PricePointResponse struct {
	Store    string `json:"store"`
	Price    string `json:"price"`
	Pence    int64  `json:"pence"`
	Cheapest bool   `json:"cheapest"`
}

// ProductResponse — товар с самой низкой ценой и рядом цен.
// Lowest равен null, если по товару нет цен.
type ProductResponse struct {
	ID       string               `json:"id"`
	Name     string               `json:"name"`
	Category string               `json:"category"`
	Weight   *string              `json:"weight,omitempty"`
	Quantity *int                 `json:"quantity,omitempty"`
	Unit     *string              `json:"unit,omitempty"`
	ImageURL *string              `json:"image_url,omitempty"`
	Lowest   *PricePointResponse  `json:"lowest"`
	Series   []PricePointResponse `json:"series"`
}

type SearchResponse struct {
	Query    string            `json:"query"`
	Guest    bool              `json:"guest"`
	Cached   bool              `json:"cached"`
	Products []ProductResponse `json:"products"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type StoreResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type ShoppingListResponse struct {
	ID        string                     `json:"id"`
	Name      string                     `json:"name"`
	UserID    string                     `json:"user_id"`
	CreatedAt time.Time                  `json:"created_at"`
	UpdatedAt *time.Time                 `json:"updated_at,omitempty"`
	Items     []ShoppingListItemResponse `json:"items"`
}

type ShoppingListItemResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

type SharedChartResponse struct {
	ObjectKey string    `json:"object_key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MAPPERS

func toPricePoint(store string, price domain.Money, cheapest bool) PricePointResponse {
	return PricePointResponse{
		Store:    store,
		Price:    render.FormatPrice(price),
		Pence:    int64(price),
		Cheapest: cheapest,
	}
}

func toProductResponse(product domain.Product, lowest *domain.PriceObservation, series *pricing.Series) ProductResponse {
	res := ProductResponse{
		ID:       product.ID,
		Name:     product.Name,
		Category: product.Category,
		Weight:   product.Weight,
		Quantity: product.Quantity,
		Unit:     product.Unit,
		ImageURL: product.ImageURL,
		Series:   []PricePointResponse{},
	}

	if lowest != nil {
		point := toPricePoint(lowest.Store, lowest.Price, true)
		res.Lowest = &point
	}

	if series != nil {
		res.Series = make([]PricePointResponse, 0, series.Len())
		for _, p := range series.Points {
			res.Series = append(res.Series, toPricePoint(p.Store, p.Price, p.Cheapest))
		}
	}

	return res
}

func toSearchResponse(res *usecase.CompareRes) SearchResponse {
	products := make([]ProductResponse, 0, len(res.Views))
	for _, v := range res.Views {
		products = append(products, toProductResponse(v.Product, v.Lowest, v.Series))
	}

	return SearchResponse{
		Query:    res.Query,
		Guest:    res.Guest,
		Cached:   res.Cached,
		Products: products,
	}
}

func toSeriesResponse(res *usecase.ProductSeriesRes) ProductResponse {
	return toProductResponse(res.Product, &res.Lowest, &res.Series)
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

func toStoresResponse(stores []domain.Store) []StoreResponse {
	res := make([]StoreResponse, 0, len(stores))
	for _, s := range stores {
		res = append(res, StoreResponse{Name: s.Name, URL: s.URL})
	}

	return res
}

func toShoppingListResponse(list *domain.ShoppingList) ShoppingListResponse {
	items := make([]ShoppingListItemResponse, 0, len(list.Items))
	for _, it := range list.Items {
		items = append(items, ShoppingListItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			CreatedAt: it.CreatedAt,
		})
	}

	return ShoppingListResponse{
		ID:        list.ID,
		Name:      list.Name,
		UserID:    list.UserID,
		CreatedAt: list.CreatedAt,
		UpdatedAt: list.UpdatedAt,
		Items:     items,
	}
}

func toShoppingListsResponse(lists []domain.ShoppingList) []ShoppingListResponse {
	res := make([]ShoppingListResponse, 0, len(lists))
	for i := range lists {
		res = append(res, toShoppingListResponse(&lists[i]))
	}

	return res
}

func toShoppingListReq(req *ShoppingListRequest) *usecase.ShoppingListReq {
	items := make([]usecase.ShoppingListItemReq, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.ShoppingListItemReq{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	return usecase.NewShoppingListReq(req.Name, items)
}
