package api

import (
	"os"
	"strings"
)

// Resolver returns the base URL for the next request.
type Resolver func() (string, error)

type baseURLOptions struct {
	stripAPI bool
}

// BaseURLOption adjusts base URL normalisation.
type BaseURLOption func(*baseURLOptions)

// WithStripAPISuffix removes a trailing "/api" segment, or the first whole "/api/" segment.
func WithStripAPISuffix() BaseURLOption {
	return func(o *baseURLOptions) { o.stripAPI = true }
}

// ResolveBaseURL normalises raw. Whitespace and trailing slashes are trimmed.
// An empty value falls back to fallback unless strict is set.
func ResolveBaseURL(raw, fallback string, strict bool, opts ...BaseURLOption) (string, error) {
	var o baseURLOptions
	for _, opt := range opts {
		opt(&o)
	}

	u := strings.TrimSpace(raw)
	if u == "" {
		if strict {
			return "", ErrMissingBaseURL
		}
		u = strings.TrimSpace(fallback)
		if u == "" {
			return "", ErrMissingBaseURL
		}
	}

	if o.stripAPI {
		switch {
		case strings.HasSuffix(strings.TrimRight(u, "/"), "/api"):
			u = strings.TrimSuffix(strings.TrimRight(u, "/"), "/api")
		case strings.Contains(u, "/api/"):
			u = strings.Replace(u, "/api/", "/", 1)
		}
	}

	u = strings.TrimRight(u, "/")
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return "", ErrInvalidBaseURL
	}
	return u, nil
}

// StaticResolver always resolves raw with no fallback.
func StaticResolver(raw string, opts ...BaseURLOption) Resolver {
	return func() (string, error) {
		return ResolveBaseURL(raw, "", true, opts...)
	}
}

// ConfigResolver resolves the base URL from cfg.
func ConfigResolver(cfg Config, opts ...BaseURLOption) Resolver {
	return func() (string, error) {
		return ResolveBaseURL(cfg.BaseURL, cfg.FallbackBaseURL, cfg.StrictBaseURL, opts...)
	}
}

// EnvResolver reads API_BASE_URL on every call so that changes made at runtime are picked up.
func EnvResolver(fallback string, strict bool, opts ...BaseURLOption) Resolver {
	return func() (string, error) {
		return ResolveBaseURL(os.Getenv("API_BASE_URL"), fallback, strict, opts...)
	}
}
