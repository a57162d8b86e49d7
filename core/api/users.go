package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/storefront/core/session"
)

// Profile is a user record as returned by the users endpoints.
type Profile struct {
	session.User
	ProfileImage string `json:"profile_image,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

func (p *Profile) UnmarshalJSON(data []byte) error {
	var w struct {
		ID             json.Number     `json:"id"`
		UserID         json.Number     `json:"userId"`
		Email          string          `json:"email"`
		Name           string          `json:"name"`
		Phone          string          `json:"phone"`
		DefaultAddress string          `json:"defaultAddress"`
		DefaultAddr2   string          `json:"default_address"`
		IsAdmin        json.RawMessage `json:"isAdmin"`
		ProfileImage   string          `json:"profile_image"`
		ProfileImage2  string          `json:"profileImage"`
		CreatedAt      string          `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*p = Profile{
		User: session.User{
			ID:             firstInt(w.ID, w.UserID),
			Email:          w.Email,
			Name:           w.Name,
			Phone:          w.Phone,
			DefaultAddress: firstString(w.DefaultAddress, w.DefaultAddr2),
			IsAdmin:        adminFlag(w.IsAdmin),
		},
		ProfileImage: firstString(w.ProfileImage, w.ProfileImage2),
		CreatedAt:    w.CreatedAt,
	}
	return nil
}

func userPath(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrMissingEmail
	}
	return "/users/" + url.PathEscape(email), nil
}

// FetchUserProfile returns the profile of the user with the given email.
func (c *Client) FetchUserProfile(ctx context.Context, email string) (*Profile, error) {
	path, err := userPath(email)
	if err != nil {
		return nil, err
	}
	var p Profile
	if err := c.do(ctx, http.MethodGet, path, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateUserProfile patches the profile and returns the stored result.
func (c *Client) UpdateUserProfile(ctx context.Context, email string, upd ProfileUpdate) (*Profile, error) {
	path, err := userPath(email)
	if err != nil {
		return nil, err
	}
	var p Profile
	if err := c.do(ctx, http.MethodPatch, path, &p, WithJSON(upd)); err != nil {
		return nil, err
	}
	return &p, nil
}

// FetchUsers lists all users. Admin only.
func (c *Client) FetchUsers(ctx context.Context) ([]Profile, error) {
	var users []Profile
	if err := c.do(ctx, http.MethodGet, "/users", &users, WithAuth()); err != nil {
		return nil, err
	}
	return users, nil
}
