package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DRSN-tech/price-compare/internal/cfg"
	"github.com/DRSN-tech/price-compare/pkg/clients"
	"github.com/DRSN-tech/price-compare/pkg/e"
	"github.com/DRSN-tech/price-compare/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

const searchKeyPrefix = "search:guest:"

// searchCacheModel — запись кэша. Query хранится, чтобы отличить коллизию ключей от попадания.
type searchCacheModel struct {
	Query    string          `json:"query"`
	Payload  json.RawMessage `json:"payload"`
	CachedAt int64           `json:"cached_at"`
}

// SearchCacheRepo кэширует сырые ответы гостевого поиска в Redis.
type SearchCacheRepo struct {
	client *clients.RedisClient
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewSearchCacheRepo(client *clients.RedisClient, cfg *cfg.RedisCfg, logger logger.Logger) *SearchCacheRepo {
	return &SearchCacheRepo{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// GetSearch возвращает закэшированный ответ. Промах и повреждённая запись дают false без ошибки.
func (c *SearchCacheRepo) GetSearch(ctx context.Context, query string) ([]byte, bool, error) {
	key := searchKey(query)

	data, err := c.client.Client.Get(ctx, key).Bytes()
	if errors.Is(err, r.Nil) {
		return nil, false, nil // cache miss
	}
	if err != nil {
		c.logger.Warnf("Redis GET failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	var model searchCacheModel
	if err := json.Unmarshal(data, &model); err != nil {
		c.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		c.delete(key)
		return nil, false, nil
	}

	if model.Query != query || len(model.Payload) == 0 {
		c.logger.Warnf("Cache query mismatch: key_query: %q, model_query: %q", query, model.Query)
		c.delete(key)
		return nil, false, nil // cache miss
	}

	return model.Payload, true, nil
}

// SetSearch кладёт ответ в кэш с TTL из конфигурации.
func (c *SearchCacheRepo) SetSearch(ctx context.Context, query string, payload []byte) error {
	if !json.Valid(payload) {
		return e.Wrap(whereami.WhereAmI(), e.ErrUnexpectedCacheValue)
	}

	data, err := json.Marshal(searchCacheModel{
		Query:    query,
		Payload:  payload,
		CachedAt: time.Now().Unix(),
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Client.Set(ctx, searchKey(query), data, c.cfg.SearchCacheTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// DeleteSearch удаляет ответ из кэша
func (c *SearchCacheRepo) DeleteSearch(ctx context.Context, query string) error {
	if err := c.client.Client.Del(ctx, searchKey(query)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *SearchCacheRepo) delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.Timeout)
	defer cancel()

	if err := c.client.Client.Del(ctx, key).Err(); err != nil {
		c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}

// searchKey возвращает Redis-ключ для запроса
func searchKey(query string) string {
	return fmt.Sprintf("%s%s", searchKeyPrefix, query)
}
