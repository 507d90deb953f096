package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/DRSN-tech/price-compare/internal/pricing"
)

const (
	defaultBarWidth = 30
	barRune         = "█"
	cheapestMark    = " <- cheapest"
)

// WriteTextChart печатает горизонтальную столбчатую диаграмму ряда цен.
// Длина столбца пропорциональна цене, самая дорогая позиция занимает width символов.
func WriteTextChart(w io.Writer, series pricing.Series, width int) error {
	if width <= 0 {
		width = defaultBarWidth
	}

	labelWidth := 0
	for _, p := range series.Points {
		labelWidth = max(labelWidth, utf8.RuneCountInString(p.Store))
	}

	maxPrice := series.Max()
	for _, p := range series.Points {
		bar := 0
		if maxPrice > 0 {
			bar = int(int64(p.Price) * int64(width) / int64(maxPrice))
			if bar == 0 && p.Price > 0 {
				bar = 1
			}
		}

		line := fmt.Sprintf("%s%s %s %s",
			p.Store,
			strings.Repeat(" ", labelWidth-utf8.RuneCountInString(p.Store)),
			strings.Repeat(barRune, bar)+strings.Repeat(" ", width-bar),
			FormatPrice(p.Price),
		)
		if p.Cheapest {
			line += cheapestMark
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}

// TextChart возвращает диаграмму строкой.
func TextChart(series pricing.Series, width int) string {
	var sb strings.Builder
	WriteTextChart(&sb, series, width) // запись в strings.Builder не возвращает ошибок

	return sb.String()
}
