package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/internal/pricing"
	"github.com/DRSN-tech/price-compare/pkg/e"
	"github.com/DRSN-tech/price-compare/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	maxQueryLength        = 200
	defaultPublishTimeout = 2 * time.Second
	cacheWriteTimeout     = 500 * time.Millisecond
)

// ComparisonUseCase ищет товары у внешнего API и вычисляет самые низкие цены и ряды цен.
// Гостевой и авторизованный поиск проходят через один и тот же путь.
type ComparisonUseCase struct {
	provider       SearchProvider
	cacheRepo      SearchCacheRepository
	publisher      EventPublisher
	logger         logger.Logger
	group          singleflight.Group
	publishTimeout time.Duration
	wg             sync.WaitGroup
	now            func() time.Time
}

// NewComparisonUC создаёт usecase. cacheRepo и publisher могут быть nil.
func NewComparisonUC(
	provider SearchProvider,
	cacheRepo SearchCacheRepository,
	publisher EventPublisher,
	logger logger.Logger,
	publishTimeout time.Duration,
) *ComparisonUseCase {
	if publishTimeout <= 0 {
		publishTimeout = defaultPublishTimeout
	}

	return &ComparisonUseCase{
		provider:       provider,
		cacheRepo:      cacheRepo,
		publisher:      publisher,
		logger:         logger,
		publishTimeout: publishTimeout,
		now:            time.Now,
	}
}

// Compare выполняет поиск и строит представление результатов.
func (c *ComparisonUseCase) Compare(ctx context.Context, req *CompareReq) (*CompareRes, error) {
	const op = "ComparisonUseCase.Compare"

	query, err := normalizeQuery(req.Query)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	set, cached, err := c.search(ctx, req.Session, query)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res := NewCompareRes(query, pricing.BuildView(set), req.Session.IsGuest(), cached)
	c.publish(res)

	return res, nil
}

// ProductSeries возвращает ряд цен одного товара из результатов поиска.
func (c *ComparisonUseCase) ProductSeries(ctx context.Context, req *ProductSeriesReq) (*ProductSeriesRes, error) {
	const op = "ComparisonUseCase.ProductSeries"

	if strings.TrimSpace(req.ProductID) == "" {
		return nil, e.Wrap(op, e.ErrProductIDMissing)
	}

	res, err := c.Compare(ctx, NewCompareReq(req.Session, req.Query))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	for _, view := range res.Views {
		if view.Product.ID != req.ProductID {
			continue
		}

		if !view.HasPrices() {
			return nil, e.Wrap(op, e.ErrNoPriceData)
		}

		return &ProductSeriesRes{
			Product: view.Product,
			Lowest:  *view.Lowest,
			Series:  *view.Series,
		}, nil
	}

	return nil, e.Wrap(op, e.ErrProductNotFound)
}

// WaitForPublish ожидает отправки фоновых событий при завершении приложения.
func (c *ComparisonUseCase) WaitForPublish(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return e.Wrap("ComparisonUseCase.WaitForPublish", ctx.Err())
	}
}

// search возвращает декодированный результат и признак попадания в кэш.
func (c *ComparisonUseCase) search(ctx context.Context, session *domain.Session, query string) (*domain.SearchResultSet, bool, error) {
	if !session.IsGuest() {
		payload, err := c.provider.FetchSearch(ctx, session, query)
		if err != nil {
			return nil, false, err
		}

		set, err := c.provider.DecodeSearch(query, payload)
		return set, false, err
	}

	if payload, ok := c.cachedSearch(ctx, query); ok {
		set, err := c.provider.DecodeSearch(query, payload)
		if err == nil {
			return set, true, nil
		}

		c.logger.Warnf("Dropping undecodable cached search for %q: %v", query, err)
		c.dropCachedSearch(query)
	}

	payload, err := c.fetchGuest(ctx, query)
	if err != nil {
		return nil, false, err
	}

	set, err := c.provider.DecodeSearch(query, payload)
	return set, false, err
}

// fetchGuest объединяет одновременные одинаковые гостевые запросы в один запрос к API
// и в фоне кладёт сырой ответ в кэш.
func (c *ComparisonUseCase) fetchGuest(ctx context.Context, query string) ([]byte, error) {
	key := cacheKey(query)

	ch := c.group.DoChan(key, func() (interface{}, error) {
		payload, err := c.provider.FetchSearch(context.WithoutCancel(ctx), nil, query)
		if err != nil {
			return nil, err
		}

		if c.cacheRepo != nil {
			go func() {
				bgCtx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
				defer cancel()

				if err := c.cacheRepo.SetSearch(bgCtx, key, payload); err != nil {
					c.logger.Warnf("Failed to cache search in background: %v", err)
				}
			}()
		}

		return payload, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}

		return res.Val.([]byte), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *ComparisonUseCase) cachedSearch(ctx context.Context, query string) ([]byte, bool) {
	if c.cacheRepo == nil {
		return nil, false
	}

	payload, ok, err := c.cacheRepo.GetSearch(ctx, cacheKey(query))
	if err != nil {
		c.logger.Warnf("Search cache lookup failed: %v", err)
		return nil, false
	}

	return payload, ok
}

func (c *ComparisonUseCase) dropCachedSearch(query string) {
	if c.cacheRepo == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
	defer cancel()

	if err := c.cacheRepo.DeleteSearch(ctx, cacheKey(query)); err != nil {
		c.logger.Warnf("Failed to drop cached search: %v", err)
	}
}

// publish отправляет событие о сравнении в фоне, не задерживая ответ.
func (c *ComparisonUseCase) publish(res *CompareRes) {
	if c.publisher == nil {
		return
	}

	event := NewComparisonEvent(uuid.NewString(), res, c.now())

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), c.publishTimeout)
		defer cancel()

		if err := c.publisher.PublishComparison(ctx, event); err != nil {
			c.logger.Warnf("Failed to publish comparison event %s: %v", event.EventID, err)
		}
	}()
}

// normalizeQuery обрезает пробелы и проверяет длину запроса.
func normalizeQuery(query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", e.ErrQueryRequired
	}

	if len([]rune(query)) > maxQueryLength {
		return "", e.ErrStatusBadRequest
	}

	return query, nil
}

// cacheKey приводит запрос к нижнему регистру: поиск во внешнем API регистронезависимый.
func cacheKey(query string) string {
	return strings.ToLower(query)
}
