package http

import (
	_ "github.com/DRSN-tech/price-compare/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/price-compare/internal/cfg"
	"github.com/DRSN-tech/price-compare/internal/usecase"
	"github.com/DRSN-tech/price-compare/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router    *chi.Mux
	logger    logger.Logger
	rateLimit *cfg.RateLimitCfg
}

// NewRouter создаёт роутер. При rateLimit == nil или Requests <= 0 ограничение частоты запросов отключено.
func NewRouter(router *chi.Mux, logger logger.Logger, rateLimit *cfg.RateLimitCfg) *Router {
	return &Router{router: router, logger: logger, rateLimit: rateLimit}
}

func (r *Router) Init(swaggerURL string, comparisonUC usecase.ComparisonUC, chartUC usecase.ChartUC, accountUC usecase.AccountUC) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.RealIP)
	r.router.Use(Logging(r.logger))
	r.router.Use(middleware.Recoverer)
	r.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(swaggerURL), // ссылка на JSON
	))
	r.router.Get("/healthz", healthz)

	r.router.Route("/api/v1", func(v1 chi.Router) {
		if r.rateLimit != nil && r.rateLimit.Requests > 0 {
			v1.Use(RateLimit(r.rateLimit.Requests, r.rateLimit.Window))
		}

		v1.Get("/", root)

		comparisonHandler := NewComparisonHandler(comparisonUC, chartUC, r.logger)
		registerComparisonRoutes(v1, comparisonHandler)

		accountHandler := NewAccountHandler(accountUC, r.logger)
		registerAccountRoutes(v1, accountHandler)

		listHandler := NewShoppingListHandler(accountUC, r.logger)
		registerShoppingListRoutes(v1, listHandler)
	})
}

func registerComparisonRoutes(router chi.Router, h *ComparisonHandler) {
	router.Get("/search", h.search)
	router.Get("/products/{id}/prices", h.productPrices)
	router.Route("/charts", func(ch chi.Router) {
		ch.Get("/svg", h.renderChart)
		ch.Post("/", h.shareChart)
	})
}

func registerAccountRoutes(router chi.Router, h *AccountHandler) {
	router.Post("/login", h.login)
	router.Post("/register", h.register)
	router.Get("/me", h.me)
	router.Get("/stores", h.stores)
}

func registerShoppingListRoutes(router chi.Router, h *ShoppingListHandler) {
	router.Route("/shopping-lists", func(sl chi.Router) {
		sl.Get("/", h.list)
		sl.Post("/", h.create)
		sl.Get("/{id}", h.get)
		sl.Put("/{id}", h.update)
		sl.Delete("/{id}", h.delete)
		sl.Post("/{id}/items", h.addItem)
	})
}
