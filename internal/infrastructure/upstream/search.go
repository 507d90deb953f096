package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/internal/pricing"
	"github.com/DRSN-tech/price-compare/pkg/e"
	"github.com/jimlawless/whereami"
)

// FetchSearch возвращает сырой ответ поиска. Без сессии используется гостевой поиск.
func (c *Client) FetchSearch(ctx context.Context, session *domain.Session, query string) ([]byte, error) {
	path := guestSearchPath
	if !session.IsGuest() {
		path = searchPath
	}

	return c.do(ctx, request{
		method:  http.MethodGet,
		path:    path,
		query:   url.Values{"query": []string{query}},
		session: session,
	})
}

// Search выполняет поиск и декодирует ответ.
func (c *Client) Search(ctx context.Context, session *domain.Session, query string) (*domain.SearchResultSet, error) {
	payload, err := c.FetchSearch(ctx, session, query)
	if err != nil {
		return nil, err
	}

	return c.DecodeSearch(query, payload)
}

// DecodeSearch превращает ответ API в SearchResultSet.
// Товары без идентификатора и повторы пропускаются, порядок выдачи сохраняется.
// Цены, которые не удалось разобрать, и цены без магазина отбрасываются с предупреждением.
func (c *Client) DecodeSearch(query string, payload []byte) (*domain.SearchResultSet, error) {
	var resp searchResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("%w: %v", e.ErrMalformedPayload, err))
	}

	products := make([]domain.Product, 0, len(resp.Products))
	seen := make(map[string]struct{}, len(resp.Products))
	for _, m := range resp.Products {
		if m.ID == "" {
			c.logger.Warnf("Skipping product without id in search %q: %s", query, m.Name)
			continue
		}
		if _, dup := seen[m.ID]; dup {
			c.logger.Warnf("Skipping duplicate product %s in search %q", m.ID, query)
			continue
		}
		seen[m.ID] = struct{}{}
		products = append(products, toDomainProduct(m))
	}

	prices := make(map[string][]domain.PriceObservation, len(resp.Prices))
	for productID, models := range resp.Prices {
		if _, ok := seen[productID]; !ok {
			continue
		}

		for _, m := range models {
			obs, ok := c.toObservation(productID, m)
			if !ok {
				continue
			}
			prices[productID] = append(prices[productID], obs)
		}
	}

	return domain.NewSearchResultSet(query, products, prices), nil
}

func (c *Client) toObservation(productID string, m priceModel) (domain.PriceObservation, bool) {
	store := strings.TrimSpace(m.Store)
	if store == "" {
		c.logger.Warnf("Dropping price without store for product %s", productID)
		return domain.PriceObservation{}, false
	}

	price, err := pricing.ParsePrice(string(m.Price))
	if err != nil {
		c.logger.Warnf("Dropping price %s from %s for product %s: %v", string(m.Price), store, productID, err)
		return domain.PriceObservation{}, false
	}

	return domain.NewPriceObservation(productID, store, price), true
}
