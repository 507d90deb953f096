package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/internal/pricing"
	"github.com/DRSN-tech/price-compare/pkg/e"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   domain.Money
		want string
	}{
		{in: 0, want: "£0.00"},
		{in: 5, want: "£0.05"},
		{in: 150, want: "£1.50"},
		{in: 1999, want: "£19.99"},
		{in: 100000, want: "£1000.00"},
	}

	for _, tt := range tests {
		if got := FormatPrice(tt.in); got != tt.want {
			t.Errorf("FormatPrice(%d): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestFormatLowest(t *testing.T) {
	lowest := domain.NewPriceObservation("p1", "Aldi", 130)

	if got := FormatLowest(pricing.ProductView{Lowest: &lowest}); got != "£1.30 at Aldi" {
		t.Errorf("unexpected lowest: %q", got)
	}
	if got := FormatLowest(pricing.ProductView{}); got != "no price data" {
		t.Errorf("unexpected empty lowest: %q", got)
	}
}

func buildSeries(t *testing.T) pricing.Series {
	t.Helper()

	series, ok := pricing.BuildSeries([]domain.PriceObservation{
		domain.NewPriceObservation("p1", "Tesco", 200),
		domain.NewPriceObservation("p1", "M&S", 400),
		domain.NewPriceObservation("p1", "Lidl", 100),
	})
	if !ok {
		t.Fatal("expected series")
	}

	return series
}

func TestTextChart(t *testing.T) {
	out := TextChart(buildSeries(t), 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), out)
	}

	if !strings.HasPrefix(lines[0], "Lidl") || !strings.HasSuffix(lines[0], cheapestMark) {
		t.Errorf("first line should be the cheapest store: %q", lines[0])
	}
	if strings.Contains(lines[1], cheapestMark) || strings.Contains(lines[2], cheapestMark) {
		t.Error("only one line may be marked cheapest")
	}

	wantBars := []int{2, 5, 10}
	for i, line := range lines {
		if got := strings.Count(line, barRune); got != wantBars[i] {
			t.Errorf("line %d: expected %d bars, got %d (%q)", i, wantBars[i], got, line)
		}
	}

	if !strings.Contains(lines[2], "£4.00") {
		t.Errorf("expected formatted price in %q", lines[2])
	}
}

func TestSVGChart(t *testing.T) {
	data, err := SVGChart("Milk <2L>", buildSeries(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svg := string(data)

	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "</svg>") {
		t.Fatalf("not an svg document: %q", svg)
	}
	if strings.Contains(svg, "Milk <2L>") || strings.Contains(svg, "M&S") {
		t.Error("text must be escaped")
	}
	if !strings.Contains(svg, "cheapest £1.00 at Lidl") {
		t.Error("title should name the cheapest store")
	}
	if !strings.Contains(svg, "rgba(47,158,68") {
		t.Error("cheapest bar should be highlighted")
	}

	// порядок подписей на оси совпадает с рядом
	lidl := strings.Index(svg, "Lidl")
	tesco := strings.Index(svg, "Tesco")
	if lidl < 0 || tesco < 0 || lidl > tesco {
		t.Errorf("bars must follow series order (lidl=%d tesco=%d)", lidl, tesco)
	}
}

func TestSVGChart_EmptySeries(t *testing.T) {
	if _, err := SVGChart("Milk", pricing.Series{}); !errors.Is(err, e.ErrNoPriceData) {
		t.Errorf("expected ErrNoPriceData, got %v", err)
	}
}

func TestSVGChart_SinglePoint(t *testing.T) {
	series, ok := pricing.BuildSeries([]domain.PriceObservation{domain.NewPriceObservation("p1", "Aldi", 0)})
	if !ok {
		t.Fatal("expected series")
	}

	if _, err := SVGChart("Free sample", series); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
