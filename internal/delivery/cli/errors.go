package cli

import (
	"errors"

	"github.com/DRSN-tech/price-compare/pkg/e"
)

// FriendlyError переводит ошибку в сообщение для пользователя терминала.
func FriendlyError(err error) string {
	switch {
	case errors.Is(err, e.ErrUnauthorized), errors.Is(err, e.ErrSessionExpired):
		return "not logged in or session expired, run `grocer login`"
	case errors.Is(err, e.ErrForbidden):
		return "this shopping list belongs to another user"
	case errors.Is(err, e.ErrNotFound):
		return "not found"
	case errors.Is(err, e.ErrQueryRequired):
		return "search query is required"
	case errors.Is(err, e.ErrUpstreamUnavailable):
		return "grocery API is unavailable, try again later"
	case errors.Is(err, e.ErrTooManyRequests):
		return "too many requests, slow down"
	default:
		return err.Error()
	}
}
