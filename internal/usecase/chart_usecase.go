package usecase

import (
	"context"

	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/internal/render"
	"github.com/DRSN-tech/price-compare/pkg/e"
	"github.com/DRSN-tech/price-compare/pkg/logger"
)

// ChartUseCase рисует график цен товара и публикует его в объектном хранилище.
type ChartUseCase struct {
	comparison  ComparisonUC
	chartsInfra ChartsInfra
	logger      logger.Logger
}

// NewChartUC создаёт usecase. Без chartsInfra публикация графиков недоступна.
func NewChartUC(comparison ComparisonUC, chartsInfra ChartsInfra, logger logger.Logger) *ChartUseCase {
	return &ChartUseCase{
		comparison:  comparison,
		chartsInfra: chartsInfra,
		logger:      logger,
	}
}

// RenderChart возвращает SVG-график ряда цен товара.
func (c *ChartUseCase) RenderChart(ctx context.Context, req *ProductSeriesReq) (*RenderedChart, error) {
	const op = "ChartUseCase.RenderChart"

	res, err := c.comparison.ProductSeries(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	data, err := render.SVGChart(res.Product.Name, res.Series)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewRenderedChart(res.Product.ID, res.Product.Name, data, render.ContentTypeSVG), nil
}

// ShareChart рисует график и сохраняет его, возвращая временную ссылку.
func (c *ChartUseCase) ShareChart(ctx context.Context, req *ProductSeriesReq) (*domain.SharedChart, error) {
	const op = "ChartUseCase.ShareChart"

	if c.chartsInfra == nil {
		return nil, e.Wrap(op, e.ErrChartsDisabled)
	}

	chart, err := c.RenderChart(ctx, req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	shared, err := c.chartsInfra.ShareChart(ctx, chart)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.logger.Infof("Shared chart for product %s: %s", chart.ProductID, shared.ObjectKey)

	return shared, nil
}
