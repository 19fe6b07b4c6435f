package api

import (
	"context"
	"net/http"

	"github.com/ihoflaz/opca-admin-dashboard/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Login authenticates with email and password. The backend answers
// { success: true, data: { token, refreshToken, user } }; anything short
// of that is a MalformedResponseError, so callers can rely on the
// returned data being complete.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginData, error) {
	env, err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", nil, loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return decodeLoginData(env)
}

// Register creates an account and, like Login, returns a full credential set.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (*domain.LoginData, error) {
	env, err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", nil, req)
	if err != nil {
		return nil, err
	}
	return decodeLoginData(env)
}

// RefreshToken exchanges a refresh token for fresh credentials.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*domain.LoginData, error) {
	env, err := c.doJSON(ctx, http.MethodPost, "/api/auth/refresh-token", nil, refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}
	return decodeLoginData(env)
}

// Me fetches the profile of the authenticated user.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	env, err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, nil)
	if err != nil {
		return nil, err
	}
	user, err := decodeData[domain.User](env)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func decodeLoginData(env *domain.Envelope) (*domain.LoginData, error) {
	data, err := decodeData[domain.LoginData](env)
	if err != nil {
		return nil, err
	}
	if data.Token == "" || data.User == nil {
		return nil, &MalformedResponseError{Message: "login data missing token or user"}
	}
	return &data, nil
}
