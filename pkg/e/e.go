package e

import "fmt"

var (
	// Внутренние ошибки
	ErrInternalServerError  = fmt.Errorf("internal server error")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrUnexpectedCacheValue = fmt.Errorf("unexpected cache value")

	// Ошибки внешнего API
	ErrUpstreamUnavailable = fmt.Errorf("upstream api unavailable")
	ErrMalformedPayload    = fmt.Errorf("malformed upstream payload")

	// Ошибки цен
	ErrInvalidPrice = fmt.Errorf("invalid price")

	// 400 Bad Request
	ErrStatusBadRequest = fmt.Errorf("bad request")
	ErrQueryRequired    = fmt.Errorf("query is required")
	ErrMissingFields    = fmt.Errorf("missing required fields")
	ErrListNameRequired = fmt.Errorf("shopping list name is required")
	ErrInvalidQuantity  = fmt.Errorf("quantity must be positive")
	ErrProductIDMissing = fmt.Errorf("product_id is required")

	// 401 / 403
	ErrUnauthorized   = fmt.Errorf("could not validate credentials")
	ErrForbidden      = fmt.Errorf("not authorized to access this resource")
	ErrSessionExpired = fmt.Errorf("session expired")

	// 404
	ErrNotFound        = fmt.Errorf("not found")
	ErrProductNotFound = fmt.Errorf("product not found in search results")
	ErrNoPriceData     = fmt.Errorf("no price data for product")

	// 429
	ErrTooManyRequests = fmt.Errorf("rate limit exceeded")

	// 503
	ErrChartsDisabled = fmt.Errorf("chart storage is not configured")

	// Ошибки объектного хранилища
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
