package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Login exchanges credentials for a bearer token.
// The token may arrive as access_token, accessToken or token; the email falls
// back from user.email to email to the submitted address.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var w struct {
		AccessToken  string          `json:"access_token"`
		AccessToken2 string          `json:"accessToken"`
		Token        string          `json:"token"`
		Email        string          `json:"email"`
		User         json.RawMessage `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/login", &w,
		WithoutAuth(),
		WithJSON(map[string]string{"email": email, "password": password}),
	)
	if err != nil {
		return LoginResult{}, err
	}

	res := LoginResult{Token: firstString(w.AccessToken, w.AccessToken2, w.Token)}
	if res.Token == "" {
		return LoginResult{}, fmt.Errorf("%w: login response has no token", ErrInvalidResponse)
	}

	if len(w.User) > 0 && string(w.User) != "null" {
		var p Profile
		if err := json.Unmarshal(w.User, &p); err != nil {
			return LoginResult{}, errors.Join(ErrInvalidResponse, err)
		}
		u := p.User
		res.User = &u
	}

	var userEmail string
	if res.User != nil {
		userEmail = res.User.Email
	}
	res.Email = firstString(userEmail, w.Email, strings.TrimSpace(email))
	if res.Email == "" {
		return LoginResult{}, ErrMissingEmail
	}
	return res, nil
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/signup", nil, WithoutAuth(), WithJSON(req))
}

// Logout invalidates the token on the server. Callers clear the local session separately.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil)
}
