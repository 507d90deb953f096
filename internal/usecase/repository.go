package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/price-compare/internal/domain"
)

// SearchCacheRepository хранит сырые ответы гостевого поиска. Производные данные не кэшируются.
type SearchCacheRepository interface {
	GetSearch(ctx context.Context, query string) ([]byte, bool, error)
	SetSearch(ctx context.Context, query string, payload []byte) error
	DeleteSearch(ctx context.Context, query string) error
}

type ChartRepository interface {
	Upload(ctx context.Context, chart *domain.Chart) (string, error)
	Delete(ctx context.Context, key string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
