package domain

// SearchResultSet — результат одного поиска.
// Products хранит порядок ответа API, Prices может не содержать части товаров.
type SearchResultSet struct {
	Query    string
	Products []Product
	Prices   map[string][]PriceObservation
}

func NewSearchResultSet(query string, products []Product, prices map[string][]PriceObservation) *SearchResultSet {
	if prices == nil {
		prices = make(map[string][]PriceObservation)
	}

	return &SearchResultSet{
		Query:    query,
		Products: products,
		Prices:   prices,
	}
}

// ObservationsFor возвращает цены товара. Для товара без цен возвращает nil.
func (s *SearchResultSet) ObservationsFor(productID string) []PriceObservation {
	if s == nil || s.Prices == nil {
		return nil
	}

	return s.Prices[productID]
}
