package pricing

import (
	"strings"

	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/pkg/e"
	"github.com/shopspring/decimal"
)

// maxPrice — верхняя граница цены в фунтах, защищает int64 от переполнения.
var maxPrice = decimal.NewFromInt(1_000_000_000)

var hundred = decimal.NewFromInt(100)

// ParsePrice переводит цену из ответа API ("1.50", 2, "\"3.25\"") в пенсы.
// Значение округляется до двух знаков после запятой, половина округляется от нуля.
// Пустые, нечисловые, отрицательные и слишком большие значения дают e.ErrInvalidPrice.
func ParsePrice(raw string) (domain.Money, error) {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"`)
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return 0, e.ErrInvalidPrice
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if d.IsNegative() || d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	pence := d.Mul(hundred).Round(0)

	return domain.Money(pence.IntPart()), nil
}

// ToDecimal переводит пенсы обратно в фунты для отображения.
func ToDecimal(m domain.Money) decimal.Decimal {
	return decimal.New(int64(m), -2)
}
