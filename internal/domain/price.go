package domain

// Money — цена в минимальных единицах валюты (пенсах). Сравнение целых чисел исключает ошибки float.
type Money int64

// PriceObservation — цена одного магазина на один товар в момент поиска.
type PriceObservation struct {
	ProductID string
	Store     string
	Price     Money
}

func NewPriceObservation(productID string, store string, price Money) PriceObservation {
	return PriceObservation{
		ProductID: productID,
		Store:     store,
		Price:     price,
	}
}

// Valid сообщает, можно ли использовать наблюдение при сравнении цен.
func (p PriceObservation) Valid() bool {
	return p.Price >= 0
}
