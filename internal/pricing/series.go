package pricing

import (
	"cmp"
	"slices"

	"github.com/DRSN-tech/price-compare/internal/domain"
)

// Point — одна точка ряда цен.
type Point struct {
	Store    string
	Price    domain.Money
	Cheapest bool
	Position int // индекс наблюдения во входной последовательности
}

// Series — цены товара по возрастанию, готовые для графика. Первая точка помечена как самая дешёвая.
type Series struct {
	Points []Point
}

// Cheapest возвращает первую точку ряда. Для пустого ряда возвращает false.
func (s Series) Cheapest() (Point, bool) {
	if len(s.Points) == 0 {
		return Point{}, false
	}

	return s.Points[0], true
}

// Len возвращает количество точек.
func (s Series) Len() int {
	return len(s.Points)
}

// Max возвращает максимальную цену ряда (последняя точка).
func (s Series) Max() domain.Money {
	if len(s.Points) == 0 {
		return 0
	}

	return s.Points[len(s.Points)-1].Price
}

// BuildSeries строит ряд цен по возрастанию. Сортировка стабильная: равные цены сохраняют входной порядок,
// поэтому первая точка всегда совпадает с результатом SelectLowest. Вход не изменяется.
// Пустой вход (или вход только из некорректных наблюдений) даёт false.
func BuildSeries(observations []domain.PriceObservation) (Series, bool) {
	points := make([]Point, 0, len(observations))
	for i, obs := range observations {
		if !obs.Valid() {
			continue
		}

		points = append(points, Point{
			Store:    obs.Store,
			Price:    obs.Price,
			Position: i,
		})
	}

	if len(points) == 0 {
		return Series{}, false
	}

	slices.SortStableFunc(points, func(a, b Point) int {
		return cmp.Compare(a.Price, b.Price)
	})
	points[0].Cheapest = true

	return Series{Points: points}, true
}
