package http

import (
	"net/http"

	"github.com/DRSN-tech/price-compare/internal/usecase"
	"github.com/DRSN-tech/price-compare/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type ShoppingListHandler struct {
	accountUsecase usecase.AccountUC
	logger         logger.Logger
}

func NewShoppingListHandler(accountUsecase usecase.AccountUC, logger logger.Logger) *ShoppingListHandler {
	return &ShoppingListHandler{accountUsecase: accountUsecase, logger: logger}
}

// list
//
//	@Summary	Списки покупок пользователя
//	@Tags		shopping-lists
//	@Produce	json
//	@Success	200	{array}		ShoppingListResponse
//	@Failure	401	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/shopping-lists [get]
func (h *ShoppingListHandler) list(w http.ResponseWriter, r *http.Request) {
	session, err := requireSession(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	lists, err := h.accountUsecase.ShoppingLists(r.Context(), session)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toShoppingListsResponse(lists))
}

// get
//
//	@Summary	Список покупок
//	@Tags		shopping-lists
//	@Produce	json
//	@Param		id	path		string	true	"Идентификатор списка"
//	@Success	200	{object}	ShoppingListResponse
//	@Failure	403	{object}	ErrorResponse	"Чужой список"
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/shopping-lists/{id} [get]
func (h *ShoppingListHandler) get(w http.ResponseWriter, r *http.Request) {
	session, err := requireSession(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	list, err := h.accountUsecase.ShoppingList(r.Context(), session, chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toShoppingListResponse(list))
}

// create
//
//	@Summary	Создание списка покупок
//	@Tags		shopping-lists
//	@Accept		json
//	@Produce	json
//	@Param		request	body		ShoppingListRequest	true	"Название и позиции"
//	@Success	201		{object}	ShoppingListResponse
//	@Failure	400		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/shopping-lists [post]
func (h *ShoppingListHandler) create(w http.ResponseWriter, r *http.Request) {
	session, err := requireSession(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var body ShoppingListRequest
	if err := decodeBody(w, r, &body); err != nil {
		WriteError(w, err)
		return
	}

	list, err := h.accountUsecase.CreateShoppingList(r.Context(), session, toShoppingListReq(&body))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toShoppingListResponse(list))
}

// update
//
//	@Summary	Замена списка покупок
//	@Tags		shopping-lists
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Идентификатор списка"
//	@Param		request	body		ShoppingListRequest	true	"Название и позиции"
//	@Success	200		{object}	ShoppingListResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/shopping-lists/{id} [put]
func (h *ShoppingListHandler) update(w http.ResponseWriter, r *http.Request) {
	session, err := requireSession(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var body ShoppingListRequest
	if err := decodeBody(w, r, &body); err != nil {
		WriteError(w, err)
		return
	}

	list, err := h.accountUsecase.UpdateShoppingList(r.Context(), session, chi.URLParam(r, "id"), toShoppingListReq(&body))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toShoppingListResponse(list))
}

// delete
//
//	@Summary	Удаление списка покупок
//	@Tags		shopping-lists
//	@Param		id	path	string	true	"Идентификатор списка"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/shopping-lists/{id} [delete]
func (h *ShoppingListHandler) delete(w http.ResponseWriter, r *http.Request) {
	session, err := requireSession(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.accountUsecase.DeleteShoppingList(r.Context(), session, chi.URLParam(r, "id")); err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// addItem
//
//	@Summary		Добавление позиции
//	@Description	Если товар уже есть в списке, количество суммируется
//	@Tags			shopping-lists
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Идентификатор списка"
//	@Param			request	body		ShoppingListItemRequest	true	"Товар и количество"
//	@Success		200		{object}	ShoppingListResponse
//	@Failure		400		{object}	ErrorResponse
//	@Security		BearerAuth
//	@Router			/shopping-lists/{id}/items [post]
func (h *ShoppingListHandler) addItem(w http.ResponseWriter, r *http.Request) {
	session, err := requireSession(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	var body ShoppingListItemRequest
	if err := decodeBody(w, r, &body); err != nil {
		WriteError(w, err)
		return
	}

	item := &usecase.ShoppingListItemReq{ProductID: body.ProductID, Quantity: body.Quantity}
	list, err := h.accountUsecase.AddShoppingListItem(r.Context(), session, chi.URLParam(r, "id"), item)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toShoppingListResponse(list))
}
