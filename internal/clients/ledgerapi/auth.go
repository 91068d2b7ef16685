package ledgerapi

import (
	"context"
	"net/http"

	"github.com/jsvantner/minca/internal/interfaces"
	"github.com/jsvantner/minca/internal/models"
)

type authResponse struct {
	Data struct {
		Token string `json:"token"`
	} `json:"data"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, login, password string) (string, error) {
	payload := map[string]string{"login": login, "password": password}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, &resp, false); err != nil {
		return "", err
	}
	return resp.Data.Token, nil
}

// Signup registers a new account and returns a bearer token. A 422 comes
// back as a ValidationError with the server's field-keyed messages intact.
func (c *Client) Signup(ctx context.Context, input models.SignupInput) (string, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signup", input, &resp, false); err != nil {
		return "", err
	}
	return resp.Data.Token, nil
}

// Ensure Client implements AuthClient
var _ interfaces.AuthClient = (*Client)(nil)
