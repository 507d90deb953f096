package http

import (
	"net/http"
	"strings"

	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/internal/usecase"
	"github.com/DRSN-tech/price-compare/pkg/e"
	"github.com/DRSN-tech/price-compare/pkg/logger"
)

type AccountHandler struct {
	accountUsecase usecase.AccountUC
	logger         logger.Logger
}

func NewAccountHandler(accountUsecase usecase.AccountUC, logger logger.Logger) *AccountHandler {
	return &AccountHandler{accountUsecase: accountUsecase, logger: logger}
}

// login
//
//	@Summary		Вход
//	@Description	Принимает JSON или форму (username, password), возвращает bearer-токен
//	@Tags			account
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Учётные данные"
//	@Success		200		{object}	TokenResponse
//	@Failure		401		{object}	ErrorResponse	"Неверный логин или пароль"
//	@Router			/login [post]
func (h *AccountHandler) login(w http.ResponseWriter, r *http.Request) {
	var body LoginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		if err := r.ParseForm(); err != nil {
			WriteError(w, e.ErrStatusBadRequest)
			return
		}
		body.Username = r.PostForm.Get("username")
		body.Password = r.PostForm.Get("password")
	} else if err := decodeBody(w, r, &body); err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.accountUsecase.Login(r.Context(), usecase.NewLoginReq(body.Username, body.Password))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, TokenResponse{AccessToken: session.AccessToken, TokenType: session.TokenType})
}

// register
//
//	@Summary	Регистрация
//	@Tags		account
//	@Accept		json
//	@Produce	json
//	@Param		request	body		RegisterRequest	true	"Данные пользователя"
//	@Success	201		{object}	UserResponse
//	@Failure	400		{object}	ErrorResponse	"Не заполнены поля или email уже занят"
//	@Router		/register [post]
func (h *AccountHandler) register(w http.ResponseWriter, r *http.Request) {
	var body RegisterRequest
	if err := decodeBody(w, r, &body); err != nil {
		WriteError(w, err)
		return
	}

	user, err := h.accountUsecase.Register(r.Context(), usecase.NewRegisterReq(body.Email, body.Password, body.Name))
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toUserResponse(user))
}

// me
//
//	@Summary	Текущий пользователь
//	@Tags		account
//	@Produce	json
//	@Success	200	{object}	UserResponse
//	@Failure	401	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/me [get]
func (h *AccountHandler) me(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	user, err := h.accountUsecase.Me(r.Context(), session)
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toUserResponse(user))
}

// stores
//
//	@Summary	Справочник магазинов
//	@Tags		stores
//	@Produce	json
//	@Success	200	{array}		StoreResponse
//	@Failure	502	{object}	ErrorResponse
//	@Router		/stores [get]
func (h *AccountHandler) stores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.accountUsecase.Stores(r.Context())
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toStoresResponse(stores))
}

// requireSession возвращает сессию из запроса; для списков покупок гостевой режим недоступен.
func requireSession(r *http.Request) (*domain.Session, error) {
	session, err := sessionFromRequest(r)
	if err != nil {
		return nil, err
	}
	if session.IsGuest() {
		return nil, e.ErrUnauthorized
	}

	return session, nil
}
