package client

import (
	"context"
	"net/http"
)

type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account, starts a session and returns the user id.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	var resp response[any]
	err := c.do(ctx, http.MethodPost, "/api/auth/register", nil,
		registerRequest{Name: name, Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.UserID, nil
}

func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/login", nil,
		loginRequest{Email: email, Password: password}, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
}

// Me returns the signed-in user, or nil without a session.
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var resp struct {
		User *Profile `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}
