package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/internal/render"
	"github.com/DRSN-tech/price-compare/pkg/e"
	"github.com/DRSN-tech/price-compare/pkg/logger"
)

func TestChart_Render(t *testing.T) {
	comparison := newComparison(newFakeProvider(map[string]*domain.SearchResultSet{"milk": milkSet()}), nil, nil)
	uc := NewChartUC(comparison, nil, logger.NewNopLogger())

	chart, err := uc.RenderChart(context.Background(), NewProductSeriesReq(nil, "milk", "P1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if chart.ContentType != render.ContentTypeSVG || chart.ProductID != "P1" {
		t.Errorf("unexpected chart %+v", chart)
	}
	if !strings.Contains(string(chart.Data), "Whole Milk") {
		t.Error("chart must contain product name")
	}
}

func TestChart_ShareDisabled(t *testing.T) {
	comparison := newComparison(newFakeProvider(map[string]*domain.SearchResultSet{"milk": milkSet()}), nil, nil)
	uc := NewChartUC(comparison, nil, logger.NewNopLogger())

	if _, err := uc.ShareChart(context.Background(), NewProductSeriesReq(nil, "milk", "P1")); !errors.Is(err, e.ErrChartsDisabled) {
		t.Errorf("expected ErrChartsDisabled, got %v", err)
	}
}

func TestChart_Share(t *testing.T) {
	comparison := newComparison(newFakeProvider(map[string]*domain.SearchResultSet{"milk": milkSet()}), nil, nil)
	infra := &fakeChartsInfra{}
	uc := NewChartUC(comparison, infra, logger.NewNopLogger())

	shared, err := uc.ShareChart(context.Background(), NewProductSeriesReq(nil, "milk", "P1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shared.URL == "" || infra.shared == nil || infra.shared.ProductID != "P1" {
		t.Errorf("unexpected share result %+v", shared)
	}

	if _, err := uc.ShareChart(context.Background(), NewProductSeriesReq(nil, "milk", "P2")); !errors.Is(err, e.ErrNoPriceData) {
		t.Errorf("expected ErrNoPriceData, got %v", err)
	}
}
