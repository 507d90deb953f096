package pricing

import "github.com/DRSN-tech/price-compare/internal/domain"

// SelectLowest возвращает наблюдение с минимальной ценой.
// При равенстве цен выигрывает первое во входном порядке. Пустой вход даёт false.
func SelectLowest(observations []domain.PriceObservation) (domain.PriceObservation, bool) {
	idx, ok := IndexOfLowest(observations)
	if !ok {
		return domain.PriceObservation{}, false
	}

	return observations[idx], true
}

// IndexOfLowest возвращает позицию самого дешёвого наблюдения во входной последовательности.
// Некорректные наблюдения (отрицательная цена) пропускаются.
func IndexOfLowest(observations []domain.PriceObservation) (int, bool) {
	best := -1
	for i, obs := range observations {
		if !obs.Valid() {
			continue
		}

		// строгое сравнение сохраняет первое из равных
		if best == -1 || obs.Price < observations[best].Price {
			best = i
		}
	}

	return best, best != -1
}
