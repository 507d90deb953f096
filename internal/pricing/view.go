package pricing

import "github.com/DRSN-tech/price-compare/internal/domain"

// ProductView — товар вместе с вычисленными ценовыми данными.
// Lowest и Series равны nil, если цен нет: отсутствие данных не подменяется нулевой ценой.
type ProductView struct {
	Product domain.Product
	Lowest  *domain.PriceObservation
	Series  *Series
}

// HasPrices сообщает, есть ли у товара ценовые данные.
func (v ProductView) HasPrices() bool {
	return v.Lowest != nil
}

// BuildView вычисляет самую низкую цену и ряд цен для каждого товара в порядке выдачи.
// Повторные идентификаторы товара пропускаются, остаётся первое вхождение.
func BuildView(set *domain.SearchResultSet) []ProductView {
	if set == nil {
		return []ProductView{}
	}

	views := make([]ProductView, 0, len(set.Products))
	seen := make(map[string]struct{}, len(set.Products))
	for _, product := range set.Products {
		if _, dup := seen[product.ID]; dup {
			continue
		}
		seen[product.ID] = struct{}{}

		views = append(views, buildProductView(product, set.ObservationsFor(product.ID)))
	}

	return views
}

func buildProductView(product domain.Product, observations []domain.PriceObservation) ProductView {
	view := ProductView{Product: product}

	if lowest, ok := SelectLowest(observations); ok {
		view.Lowest = &lowest
	}

	if series, ok := BuildSeries(observations); ok {
		view.Series = &series
	}

	return view
}
