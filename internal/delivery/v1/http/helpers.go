package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/pkg/e"
)

const maxRequestBodySize = 1 << 20

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// ToHTTPResponse переводит ошибку usecase в HTTP-статус и сообщение для клиента.
func ToHTTPResponse(err error) (int, string) {
	badRequest := []error{
		e.ErrQueryRequired,
		e.ErrMissingFields,
		e.ErrListNameRequired,
		e.ErrInvalidQuantity,
		e.ErrProductIDMissing,
		e.ErrInvalidPrice,
		e.ErrStatusBadRequest,
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest, target.Error()
		}
	}

	switch {
	case errors.Is(err, e.ErrUnauthorized):
		return http.StatusUnauthorized, e.ErrUnauthorized.Error()
	case errors.Is(err, e.ErrSessionExpired):
		return http.StatusUnauthorized, e.ErrSessionExpired.Error()
	case errors.Is(err, e.ErrForbidden):
		return http.StatusForbidden, e.ErrForbidden.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrNoPriceData):
		return http.StatusNotFound, e.ErrNoPriceData.Error()
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound, e.ErrNotFound.Error()
	case errors.Is(err, e.ErrTooManyRequests):
		return http.StatusTooManyRequests, e.ErrTooManyRequests.Error()
	case errors.Is(err, e.ErrUpstreamUnavailable), errors.Is(err, e.ErrMalformedPayload):
		return http.StatusBadGateway, e.ErrUpstreamUnavailable.Error()
	case errors.Is(err, e.ErrChartsDisabled):
		return http.StatusServiceUnavailable, e.ErrChartsDisabled.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	if code == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// sessionFromRequest достаёт bearer-токен из заголовка Authorization.
// Без заголовка возвращает nil (гостевой режим), с заголовком другой схемы — ErrUnauthorized.
func sessionFromRequest(r *http.Request) (*domain.Session, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return nil, nil
	}

	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return nil, fmt.Errorf("%w: malformed authorization header", e.ErrUnauthorized)
	}

	return domain.NewSession(token, "", nil), nil
}

// decodeBody читает JSON-тело запроса. Неизвестные поля запрещены.
func decodeBody(w http.ResponseWriter, r *http.Request, out any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", e.ErrStatusBadRequest, err)
	}

	return nil
}
