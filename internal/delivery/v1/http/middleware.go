package http

import (
	"net/http"
	"time"

	"github.com/DRSN-tech/price-compare/pkg/e"
	"github.com/DRSN-tech/price-compare/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// Logging пишет в лог метод, путь, статус и длительность каждого запроса вместе с chi request id.
func Logging(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			reqLog := log.With("request_id", middleware.GetReqID(r.Context()))
			format := "%s %s -> %d (%d ms)"
			args := []any{r.Method, r.URL.Path, status, time.Since(start).Milliseconds()}
			if status >= http.StatusInternalServerError {
				reqLog.Warnf(format, args...)
				return
			}
			reqLog.Infof(format, args...)
		})
	}
}

// RateLimit ограничивает число запросов с одного IP за окно window. После chi RealIP в RemoteAddr лежит адрес клиента.
// Ответ 429 пишется в общем формате ошибок, Retry-After выставляет httprate.
func RateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			WriteError(w, e.ErrTooManyRequests)
		}),
	)
}
