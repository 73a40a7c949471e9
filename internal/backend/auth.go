package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

var ErrNoToken = errors.New("login response carried no access token")

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out tokenResponse
	if err := c.doJSON(ctx, nil, http.MethodPost, "/auth/login/", loginRequest{Username: username, Password: password}, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", ErrNoToken
	}
	return out.AccessToken, nil
}

// Me returns the identity behind creds.
func (c *Client) Me(ctx context.Context, creds *Credentials) (model.User, error) {
	var u model.User
	err := c.doJSON(ctx, creds, http.MethodGet, "/auth/me/", nil, &u)
	return u, err
}

// Register creates an account and returns the backend's payload untouched.
func (c *Client) Register(ctx context.Context, reg model.Registration) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.doJSON(ctx, nil, http.MethodPost, "/auth/register/", reg, &out); err != nil {
		return nil, err
	}
	return out, nil
}
