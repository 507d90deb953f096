// Package render отвечает за представление цен: форматирование в фунтах, текстовые и SVG-графики.
package render

import (
	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/internal/pricing"
)

const currencySymbol = "£"

// FormatPrice форматирует цену в пенсах как "£1.50".
func FormatPrice(m domain.Money) string {
	return currencySymbol + pricing.ToDecimal(m).StringFixed(2)
}

// FormatLowest возвращает строку вида "£1.50 at Tesco" или "no price data".
func FormatLowest(view pricing.ProductView) string {
	if !view.HasPrices() {
		return "no price data"
	}

	return FormatPrice(view.Lowest.Price) + " at " + view.Lowest.Store
}
