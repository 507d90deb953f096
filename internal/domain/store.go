package domain

// Store — розничная сеть из справочника магазинов
type Store struct {
	Name string
	URL  string
}
