package minio

import (
	"bytes"
	"context"
	"net/url"
	"time"

	"github.com/DRSN-tech/price-compare/internal/cfg"
	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// ChartRepo хранит отрисованные графики цен в MinIO.
type ChartRepo struct {
	mc  *minio.Client
	cfg *cfg.MinIOCfg
}

func NewChartRepo(mc *minio.Client, cfg *cfg.MinIOCfg) *ChartRepo {
	return &ChartRepo{
		mc:  mc,
		cfg: cfg,
	}
}

// Upload загружает график в MinIO и возвращает ключ объекта.
func (c *ChartRepo) Upload(ctx context.Context, chart *domain.Chart) (string, error) {
	reader := bytes.NewReader(chart.Data)

	info, err := c.mc.PutObject(ctx, c.cfg.BucketName, chart.ObjectKey, reader, chart.Size, minio.PutObjectOptions{
		ContentType:  chart.ContentType,
		CacheControl: "public, max-age=3600",
		UserMetadata: map[string]string{"chart-id": chart.ID},
	})
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return info.Key, nil
}

// Delete удаляет объект из MinIO по указанному ключу.
func (c *ChartRepo) Delete(ctx context.Context, key string) error {
	if err := c.mc.RemoveObject(ctx, c.cfg.BucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// PresignedURL выдаёт временную ссылку на скачивание графика.
func (c *ChartRepo) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	params := url.Values{}
	params.Set("response-content-disposition", "inline")

	u, err := c.mc.PresignedGetObject(ctx, c.cfg.BucketName, key, ttl, params)
	if err != nil {
		return "", e.Wrap(whereami.WhereAmI(), err)
	}

	return u.String(), nil
}
