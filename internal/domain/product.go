package domain

// Product описывает товар из результатов поиска. После получения от API не изменяется.
type Product struct {
	ID       string
	Name     string
	Category string
	Weight   *string
	Quantity *int
	Unit     *string
	ImageURL *string
}

func NewProduct(id string, name string, category string) *Product {
	return &Product{
		ID:       id,
		Name:     name,
		Category: category,
	}
}
