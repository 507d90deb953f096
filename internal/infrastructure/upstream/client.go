package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/DRSN-tech/price-compare/internal/cfg"
	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/pkg/e"
	"github.com/DRSN-tech/price-compare/pkg/jitter"
	"github.com/DRSN-tech/price-compare/pkg/logger"
	"github.com/jimlawless/whereami"
)

const (
	guestSearchPath   = "/api/guest-search"
	searchPath        = "/api/search"
	loginPath         = "/api/login"
	registerPath      = "/api/register"
	mePath            = "/api/me"
	storesPath        = "/api/stores"
	shoppingListsPath = "/api/shopping-lists"

	maxResponseSize = 10 << 20
)

// Client — HTTP-клиент внешнего API сравнения цен.
// Сессия передаётся в каждый вызов явно, клиент не хранит токены.
type Client struct {
	httpClient *http.Client
	cfg        *cfg.UpstreamCfg
	logger     logger.Logger
}

func NewClient(cfg *cfg.UpstreamCfg, logger logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		logger:     logger,
	}
}

// request описывает один вызов API.
type request struct {
	method      string
	path        string
	query       url.Values
	session     *domain.Session
	body        []byte
	contentType string
}

// do выполняет запрос. Идемпотентные GET повторяются при сетевых ошибках и 5xx
// с экспоненциальной задержкой и jitter.
func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	attempts := 1
	if req.method == http.MethodGet {
		attempts += max(c.cfg.MaxRetries, 0)
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := jitter.ExponentialBackoff(c.cfg.RetryBase, c.cfg.RetryMax, attempt-1, jitter.DefaultJitter)
			c.logger.Debugf("Retrying %s %s in %v (attempt %d): %v", req.method, req.path, delay, attempt+1, lastErr)
			if err := jitter.Sleep(ctx, delay); err != nil {
				return nil, e.Wrap(whereami.WhereAmI(), err)
			}
		}

		data, retry, err := c.doOnce(ctx, req)
		if err == nil {
			return data, nil
		}

		lastErr = err
		if !retry || ctx.Err() != nil {
			break
		}
	}

	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, req request) ([]byte, bool, error) {
	u := c.cfg.BaseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if auth := req.session.AuthorizationHeader(); auth != "" {
		httpReq.Header.Set("Authorization", auth)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, e.Wrap(whereami.WhereAmI(), ctx.Err())
		}

		return nil, true, e.Wrap(whereami.WhereAmI(), fmt.Errorf("%w: %v", e.ErrUpstreamUnavailable, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, true, e.Wrap(whereami.WhereAmI(), fmt.Errorf("%w: %v", e.ErrUpstreamUnavailable, err))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, false, nil
	}

	statusErr := statusError(resp.StatusCode, data)
	c.logger.Debugf("%s %s returned %d: %v", req.method, req.path, resp.StatusCode, statusErr)

	return nil, errors.Is(statusErr, e.ErrUpstreamUnavailable), e.Wrap(whereami.WhereAmI(), statusErr)
}

// statusError переводит статус ответа API в ошибку из pkg/e.
func statusError(status int, body []byte) error {
	var sentinel error
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		sentinel = e.ErrStatusBadRequest
	case status == http.StatusUnauthorized:
		sentinel = e.ErrUnauthorized
	case status == http.StatusForbidden:
		sentinel = e.ErrForbidden
	case status == http.StatusNotFound:
		sentinel = e.ErrNotFound
	case status == http.StatusTooManyRequests:
		sentinel = e.ErrTooManyRequests
	default:
		sentinel = e.ErrUpstreamUnavailable
	}

	if detail := errorDetail(body); detail != "" {
		return fmt.Errorf("%w: %s", sentinel, detail)
	}

	return fmt.Errorf("%w: status %d", sentinel, status)
}

// errorDetail достаёт поле detail из ответа с ошибкой. detail может быть строкой или списком.
func errorDetail(body []byte) string {
	var m errorModel
	if err := json.Unmarshal(body, &m); err != nil || len(m.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(m.Detail, &s); err == nil {
		return s
	}

	return string(m.Detail)
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, session *domain.Session, out any) error {
	data, err := c.do(ctx, request{method: http.MethodGet, path: path, query: query, session: session})
	if err != nil {
		return err
	}

	return decodeJSON(data, out)
}

func (c *Client) sendJSON(ctx context.Context, method string, path string, session *domain.Session, in any, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	data, err := c.do(ctx, request{
		method:      method,
		path:        path,
		session:     session,
		body:        body,
		contentType: "application/json",
	})
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}

	return decodeJSON(data, out)
}

func decodeJSON(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("%w: %v", e.ErrMalformedPayload, err))
	}

	return nil
}

func shoppingListPath(id string) string {
	return shoppingListsPath + "/" + url.PathEscape(strings.TrimSpace(id))
}
