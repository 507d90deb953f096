package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/DRSN-tech/price-compare/internal/domain"
	"github.com/DRSN-tech/price-compare/pkg/e"
	"github.com/jimlawless/whereami"
)

// Login обменивает логин и пароль на токен доступа. API принимает OAuth2 password form.
func (c *Client) Login(ctx context.Context, username string, password string) (*domain.Session, error) {
	form := url.Values{
		"username": []string{username},
		"password": []string{password},
	}

	data, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        loginPath,
		body:        []byte(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	})
	if err != nil {
		return nil, err
	}

	var token tokenModel
	if err := decodeJSON(data, &token); err != nil {
		return nil, err
	}

	if token.AccessToken == "" {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrMalformedPayload)
	}

	return domain.NewSession(token.AccessToken, token.TokenType, nil), nil
}

func (c *Client) Register(ctx context.Context, email string, password string, name string) (*domain.User, error) {
	var user userModel
	if err := c.sendJSON(ctx, http.MethodPost, registerPath, nil, registerModel{
		Email:    email,
		Password: password,
		Name:     name,
	}, &user); err != nil {
		return nil, err
	}

	return toDomainUser(user), nil
}

func (c *Client) Me(ctx context.Context, session *domain.Session) (*domain.User, error) {
	var user userModel
	if err := c.getJSON(ctx, mePath, nil, session, &user); err != nil {
		return nil, err
	}

	return toDomainUser(user), nil
}

// Stores возвращает справочник магазинов.
func (c *Client) Stores(ctx context.Context) ([]domain.Store, error) {
	var stores []storeModel
	if err := c.getJSON(ctx, storesPath, nil, nil, &stores); err != nil {
		return nil, err
	}

	return toDomainStores(stores), nil
}
