package domain

import "time"

// User описывает пользователя внешнего API
type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
}
