package http

import (
	"net/http"

	"github.com/DRSN-tech/price-compare/internal/usecase"
	"github.com/DRSN-tech/price-compare/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type ComparisonHandler struct {
	comparisonUsecase usecase.ComparisonUC
	chartUsecase      usecase.ChartUC
	logger            logger.Logger
}

func NewComparisonHandler(comparisonUsecase usecase.ComparisonUC, chartUsecase usecase.ChartUC, logger logger.Logger) *ComparisonHandler {
	return &ComparisonHandler{comparisonUsecase: comparisonUsecase, chartUsecase: chartUsecase, logger: logger}
}

// search
//
//	@Summary		Поиск товаров с сравнением цен
//	@Description	Без заголовка Authorization выполняется гостевой поиск
//	@Tags			search
//	@Produce		json
//	@Param			query	query		string	true	"Поисковый запрос"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	ErrorResponse	"Пустой запрос"
//	@Failure		401		{object}	ErrorResponse	"Недействительный токен"
//	@Failure		502		{object}	ErrorResponse	"Внешний API недоступен"
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *ComparisonHandler) search(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.comparisonUsecase.Compare(r.Context(), usecase.NewCompareReq(session, r.URL.Query().Get("query")))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toSearchResponse(res))
}

// productPrices
//
//	@Summary		Ряд цен товара
//	@Description	Цены товара по магазинам от самой низкой к самой высокой
//	@Tags			search
//	@Produce		json
//	@Param			id		path		string	true	"Идентификатор товара"
//	@Param			query	query		string	true	"Поисковый запрос, в выдаче которого есть товар"
//	@Success		200		{object}	ProductResponse
//	@Failure		404		{object}	ErrorResponse	"Товара нет в выдаче или по нему нет цен"
//	@Security		BearerAuth
//	@Router			/products/{id}/prices [get]
func (h *ComparisonHandler) productPrices(w http.ResponseWriter, r *http.Request) {
	req, err := seriesRequest(r, r.URL.Query().Get("query"), chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.comparisonUsecase.ProductSeries(r.Context(), req)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toSeriesResponse(res))
}

// renderChart
//
//	@Summary		SVG-график цен товара
//	@Tags			charts
//	@Produce		image/svg+xml
//	@Param			query		query		string	true	"Поисковый запрос"
//	@Param			product_id	query		string	true	"Идентификатор товара"
//	@Success		200			{file}		file
//	@Failure		404			{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/charts/svg [get]
func (h *ComparisonHandler) renderChart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req, err := seriesRequest(r, q.Get("query"), q.Get("product_id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	chart, err := h.chartUsecase.RenderChart(r.Context(), req)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", chart.ContentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(chart.Data)
}

// shareChart
//
//	@Summary		Сохранение графика цен
//	@Description	Отрисовывает график, сохраняет его в объектное хранилище и возвращает временную ссылку
//	@Tags			charts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ChartRequest	true	"Запрос и товар"
//	@Success		201		{object}	SharedChartResponse
//	@Failure		503		{object}	ErrorResponse	"Хранилище графиков не настроено"
//	@Security		BearerAuth
//	@Router			/charts [post]
func (h *ComparisonHandler) shareChart(w http.ResponseWriter, r *http.Request) {
	var body ChartRequest
	if err := decodeBody(w, r, &body); err != nil {
		WriteError(w, err)
		return
	}

	req, err := seriesRequest(r, body.Query, body.ProductID)
	if err != nil {
		WriteError(w, err)
		return
	}

	shared, err := h.chartUsecase.ShareChart(r.Context(), req)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, SharedChartResponse{
		ObjectKey: shared.ObjectKey,
		URL:       shared.URL,
		ExpiresAt: shared.ExpiresAt,
	})
}

func seriesRequest(r *http.Request, query string, productID string) (*usecase.ProductSeriesReq, error) {
	session, err := sessionFromRequest(r)
	if err != nil {
		return nil, err
	}

	return usecase.NewProductSeriesReq(session, query, productID), nil
}
