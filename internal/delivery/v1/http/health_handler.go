package http

import "net/http"

const apiBanner = "UK Grocery Price Comparison API"

// root
//
//	@Summary	Приветствие API
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	MessageResponse
//	@Router		/ [get]
func root(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, http.StatusOK, MessageResponse{Message: apiBanner})
}

// healthz
//
//	@Summary	Проверка работоспособности
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	MessageResponse
//	@Router		/healthz [get]
func healthz(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, http.StatusOK, MessageResponse{Message: "ok"})
}
