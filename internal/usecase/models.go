package usecase

import (
	"time"

	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/internal/pricing"
)

// COMPARISON USECASE

// CompareReq — запрос на сравнение цен. Пустая сессия означает гостевой поиск.
type CompareReq struct {
	Session *domain.Session
	Query   string
}

// CompareRes — товары в порядке выдачи вместе с вычисленными ценами.
type CompareRes struct {
	Query  string
	Views  []pricing.ProductView
	Guest  bool
	Cached bool
}

// ProductSeriesReq — запрос ряда цен одного товара из результатов поиска.
type ProductSeriesReq struct {
	Session   *domain.Session
	Query     string
	ProductID string
}

type ProductSeriesRes struct {
	Product domain.Product
	Lowest  domain.PriceObservation
	Series  pricing.Series
}

// ACCOUNT USECASE

type LoginReq struct {
	Username string
	Password string
}

type RegisterReq struct {
	Email    string
	Password string
	Name     string
}

// ShoppingListReq — данные для создания или замены списка покупок.
type ShoppingListReq struct {
	Name  string
	Items []ShoppingListItemReq
}

type ShoppingListItemReq struct {
	ProductID string
	Quantity  int
}

// CHART USECASE

// RenderedChart — отрисованный график, готовый к отдаче или загрузке в хранилище.
type RenderedChart struct {
	ProductID   string
	Title       string
	Data        []byte
	ContentType string
}

// INFRASTRUCTURE

// ComparisonEvent — событие о выполненном сравнении, публикуется в Kafka.
type ComparisonEvent struct {
	EventID    string
	Query      string
	Guest      bool
	ComputedAt time.Time
	Products   []ComparisonEventProduct
}

// ComparisonEventProduct — итог сравнения по одному товару.
type ComparisonEventProduct struct {
	ProductID   string
	Name        string
	HasPrices   bool
	LowestStore string
	LowestPrice domain.Money
	StoreCount  int
}

// MAPPERS

func NewCompareReq(session *domain.Session, query string) *CompareReq {
	return &CompareReq{
		Session: session,
		Query:   query,
	}
}

func NewCompareRes(query string, views []pricing.ProductView, guest bool, cached bool) *CompareRes {
	return &CompareRes{
		Query:  query,
		Views:  views,
		Guest:  guest,
		Cached: cached,
	}
}

func NewProductSeriesReq(session *domain.Session, query string, productID string) *ProductSeriesReq {
	return &ProductSeriesReq{
		Session:   session,
		Query:     query,
		ProductID: productID,
	}
}

func NewLoginReq(username string, password string) *LoginReq {
	return &LoginReq{
		Username: username,
		Password: password,
	}
}

func NewRegisterReq(email string, password string, name string) *RegisterReq {
	return &RegisterReq{
		Email:    email,
		Password: password,
		Name:     name,
	}
}

func NewShoppingListReq(name string, items []ShoppingListItemReq) *ShoppingListReq {
	return &ShoppingListReq{
		Name:  name,
		Items: items,
	}
}

func NewRenderedChart(productID string, title string, data []byte, contentType string) *RenderedChart {
	return &RenderedChart{
		ProductID:   productID,
		Title:       title,
		Data:        data,
		ContentType: contentType,
	}
}

// NewComparisonEvent собирает событие из результата сравнения.
func NewComparisonEvent(eventID string, res *CompareRes, computedAt time.Time) *ComparisonEvent {
	products := make([]ComparisonEventProduct, 0, len(res.Views))
	for _, v := range res.Views {
		p := ComparisonEventProduct{
			ProductID: v.Product.ID,
			Name:      v.Product.Name,
			HasPrices: v.HasPrices(),
		}
		if v.HasPrices() {
			p.LowestStore = v.Lowest.Store
			p.LowestPrice = v.Lowest.Price
			p.StoreCount = v.Series.Len()
		}
		products = append(products, p)
	}

	return &ComparisonEvent{
		EventID:    eventID,
		Query:      res.Query,
		Guest:      res.Guest,
		ComputedAt: computedAt,
		Products:   products,
	}
}
