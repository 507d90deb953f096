package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/price-compare/internal/cfg"
	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/internal/infrastructure"
	"github.com/DRSN-tech/price-compare/internal/usecase"
	"github.com/DRSN-tech/price-compare/pkg/e"
	"github.com/DRSN-tech/price-compare/pkg/jitter"
	"github.com/DRSN-tech/price-compare/pkg/logger"
	"github.com/google/uuid"
)

const (
	cleanupAttempts = 3
	cleanupTimeout  = 30 * time.Second
)

// ChartInfrastructure публикует графики в MinIO и убирает объекты, которые не удалось выдать.
type ChartInfrastructure struct {
	chartRepo      usecase.ChartRepository
	cfg            *cfg.MinIOCfg
	logger         logger.Logger
	shutdownCtx    context.Context
	wg             sync.WaitGroup
	cleanupBackoff time.Duration
	now            func() time.Time
}

func NewChartInfrastructure(chartRepo usecase.ChartRepository, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *ChartInfrastructure {
	return &ChartInfrastructure{
		chartRepo:      chartRepo,
		cfg:            cfg,
		logger:         logger,
		shutdownCtx:    shutdownCtx,
		cleanupBackoff: time.Second,
		now:            time.Now,
	}
}

// ShareChart загружает график и возвращает presigned-ссылку на него.
// Если ссылку получить не удалось, загруженный объект удаляется в фоне.
func (m *ChartInfrastructure) ShareChart(ctx context.Context, chart *usecase.RenderedChart) (*domain.SharedChart, error) {
	const op = "ChartInfrastructure.ShareChart"

	ext, err := infrastructure.GetExtensionFromMIME(chart.ContentType)
	if err != nil {
		return nil, e.Wrap(op, fmt.Errorf("content type %s: %w", chart.ContentType, err))
	}

	chartID := uuid.NewString()
	objKey := fmt.Sprintf("charts/%s/%s.%s", infrastructure.SanitizeKeyPart(chart.ProductID), chartID, ext)
	newChart := domain.NewChart(chartID, m.cfg.BucketName, objKey, chart.Data, chart.ContentType)

	key, err := m.chartRepo.Upload(ctx, newChart)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	expiresAt := m.now().Add(m.cfg.PresignTTL)
	u, err := m.chartRepo.PresignedURL(ctx, key, m.cfg.PresignTTL)
	if err != nil {
		m.CleanupCharts([]string{key})
		return nil, e.Wrap(op, err)
	}

	return &domain.SharedChart{
		ObjectKey: key,
		URL:       u,
		ExpiresAt: expiresAt,
	}, nil
}

// CleanupCharts запускает фоновую очистку указанных ключей MinIO
func (m *ChartInfrastructure) CleanupCharts(keys []string) {
	if len(keys) == 0 {
		return
	}

	m.wg.Add(1)
	go m.cleanupKeys(keys)
}

// cleanupKeys удаляет объекты с экспоненциальной задержкой и jitter между попытками.
func (m *ChartInfrastructure) cleanupKeys(keys []string) {
	defer m.wg.Done()
	const op = "ChartInfrastructure.cleanupKeys"
	m.logger.Infof("%s: Cleaning up %d chart object(s)", op, len(keys))

	ctx, cancel := context.WithTimeout(m.shutdownCtx, cleanupTimeout)
	defer cancel()

	for _, key := range keys {
		for attempt := 0; attempt < cleanupAttempts; attempt++ {
			err := m.chartRepo.Delete(ctx, key)
			if err == nil {
				break
			}

			if ctx.Err() != nil {
				m.logger.Warnf("cleanup interrupted by shutdown, key=%v", key)
				return
			}

			if attempt == cleanupAttempts-1 {
				m.logger.Errorf(e.Wrap(op, err), "failed to delete chart object %s", key)
				break
			}

			delay := jitter.ExponentialBackoff(m.cleanupBackoff, 4*m.cleanupBackoff, attempt, jitter.DefaultJitter)
			if err := jitter.Sleep(ctx, delay); err != nil {
				m.logger.Warnf("cleanup interrupted by shutdown during backoff, key=%v", key)
				return
			}
		}
	}
}

// WaitForCleanup ожидает завершения всех фоновых задач очистки с учётом таймаута завершения приложения.
func (m *ChartInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}
