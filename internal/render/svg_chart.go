package render

import (
	"bytes"
	"fmt"
	"html"
	"math"

	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/internal/pricing"
	"github.com/DRSN-tech/price-compare/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ContentTypeSVG — MIME-тип отрисованного графика.
const ContentTypeSVG = "image/svg+xml"

const (
	svgHeight     = 400
	svgMinWidth   = 480
	svgBarWidth   = 48
	svgBarSpacing = 32
	svgMargin     = 160

	colorBar      = "9aa5b1"
	colorCheapest = "2f9e44"
	colorStroke   = "ffffff"
)

// SVGChart рисует столбчатую диаграмму цен одного товара.
// Столбцы идут в порядке ряда, самый дешёвый выделен цветом. Пустой ряд даёт ошибку.
func SVGChart(title string, series pricing.Series) ([]byte, error) {
	cheapest, ok := series.Cheapest()
	if !ok {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrNoPriceData)
	}

	bars := make([]chart.Value, 0, series.Len())
	for _, p := range series.Points {
		fill := colorBar
		if p.Cheapest {
			fill = colorCheapest
		}

		bars = append(bars, chart.Value{
			Label: html.EscapeString(fmt.Sprintf("%s %s", p.Store, FormatPrice(p.Price))),
			Value: poundsOf(p.Price),
			Style: chart.Style{
				FillColor:   drawing.ColorFromHex(fill),
				StrokeColor: drawing.ColorFromHex(colorStroke),
				StrokeWidth: 1,
			},
		})
	}

	// у пустой оси go-chart считает нулевой диапазон
	top := poundsOf(series.Max())
	if top <= 0 {
		top = 1
	}

	graph := chart.BarChart{
		Title:      html.EscapeString(fmt.Sprintf("%s: cheapest %s at %s", title, FormatPrice(cheapest.Price), cheapest.Store)),
		Width:      max(svgMinWidth, svgMargin+len(bars)*(svgBarWidth+svgBarSpacing)),
		Height:     svgHeight,
		BarWidth:   svgBarWidth,
		BarSpacing: svgBarSpacing,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top},
			ValueFormatter: func(v interface{}) string {
				f, ok := v.(float64)
				if !ok {
					return ""
				}

				return FormatPrice(domain.Money(math.Round(f * 100)))
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.SVG, &buf); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return buf.Bytes(), nil
}

func poundsOf(m domain.Money) float64 {
	return float64(m) / 100
}
