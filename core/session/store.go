package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/storefront/core/logger"
	"github.com/dmitrymomot/storefront/core/storage"
	"github.com/dmitrymomot/storefront/pkg/jwt"
)

// Storage keys.
const (
	TokenKey = "token"
	EmailKey = "email"
	UserKey  = "user"
)

// Status is the result of inspecting a token.
type Status int

const (
	// StatusAbsent means no token is stored.
	StatusAbsent Status = iota
	// StatusValid means the token is usable and not close to expiry.
	StatusValid
	// StatusExpiringSoon means the token expires within the warning window.
	StatusExpiringSoon
	// StatusExpired means the token is past its expiry (with buffer) or unreadable.
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusAbsent:
		return "absent"
	case StatusValid:
		return "valid"
	case StatusExpiringSoon:
		return "expiring_soon"
	case StatusExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// User is the profile returned by the backend at login.
type User struct {
	ID             int64  `json:"id,omitempty"`
	Email          string `json:"email,omitempty"`
	Name           string `json:"name,omitempty"`
	Phone          string `json:"phone,omitempty"`
	DefaultAddress string `json:"defaultAddress,omitempty"`
	IsAdmin        int    `json:"isAdmin,omitempty"`
}

// Admin reports whether the user has the admin flag.
func (u User) Admin() bool { return u.IsAdmin != 0 }

// Credentials is what a successful login produces.
type Credentials struct {
	Token string
	Email string
	User  *User
}

// Store persists the session keys and evaluates token validity.
type Store struct {
	backend storage.Storage
	buffer  time.Duration
	window  time.Duration
	now     func() time.Time
	logger  *slog.Logger
}

// NewStore creates a Store over backend.
func NewStore(backend storage.Storage, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, ErrNilStorage
	}
	o := newOptions(opts)
	return newStore(backend, o), nil
}

func newOptions(opts []Option) options {
	o := options{
		cfg:    DefaultConfig(),
		logger: logger.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newStore(backend storage.Storage, o options) *Store {
	return &Store{
		backend: backend,
		buffer:  o.cfg.ExpiryBuffer,
		window:  o.cfg.WarningWindow,
		now:     o.now,
		logger:  o.logger,
	}
}

// Save persists the credentials. The user key is written only when a profile is present.
func (s *Store) Save(ctx context.Context, c Credentials) error {
	token := strings.TrimSpace(c.Token)
	if token == "" {
		return ErrMissingToken
	}

	if err := s.backend.Set(ctx, TokenKey, token); err != nil {
		return errors.Join(ErrSaveSession, err)
	}
	if c.Email != "" {
		if err := s.backend.Set(ctx, EmailKey, c.Email); err != nil {
			return errors.Join(ErrSaveSession, err)
		}
	}
	if c.User != nil {
		data, err := json.Marshal(c.User)
		if err != nil {
			return errors.Join(ErrSaveSession, err)
		}
		if err := s.backend.Set(ctx, UserKey, string(data)); err != nil {
			return errors.Join(ErrSaveSession, err)
		}
	}

	s.logger.DebugContext(ctx, "session saved", logger.Email(c.Email))
	return nil
}

// Token returns the stored token or ErrMissingToken.
func (s *Store) Token(ctx context.Context) (string, error) {
	return s.get(ctx, TokenKey, ErrMissingToken)
}

// Email returns the stored email or storage.ErrNotFound.
func (s *Store) Email(ctx context.Context) (string, error) {
	return s.get(ctx, EmailKey, storage.ErrNotFound)
}

// User returns the stored profile. A missing profile yields (nil, nil).
func (s *Store) User(ctx context.Context) (*User, error) {
	raw, err := s.get(ctx, UserKey, nil)
	if err != nil || raw == "" {
		return nil, err
	}

	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, errors.Join(ErrInvalidUser, err)
	}
	return &u, nil
}

func (s *Store) get(ctx context.Context, key string, missing error) (string, error) {
	v, err := s.backend.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && v == "") {
		return "", missing
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return v, nil
}

// Clear removes all session keys. Every key is attempted even if one fails.
func (s *Store) Clear(ctx context.Context) error {
	var errs []error
	for _, key := range []string{TokenKey, EmailKey, UserKey} {
		if err := s.backend.Remove(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
		}
	}
	if len(errs) > 0 {
		err := errors.Join(append([]error{ErrClearSession}, errs...)...)
		s.logger.ErrorContext(ctx, "failed to clear session", logger.Errors(errs...))
		return err
	}
	return nil
}

// Check classifies token against now.
func (s *Store) Check(token string, now time.Time) Status {
	if strings.TrimSpace(token) == "" {
		return StatusAbsent
	}

	exp, err := jwt.Expiration(token)
	if err != nil {
		return StatusExpired
	}
	if !exp.After(now.Add(s.buffer)) {
		return StatusExpired
	}
	if !exp.After(now.Add(s.window)) {
		return StatusExpiringSoon
	}
	return StatusValid
}

// ExpiresAt returns the expiry claim of the stored token.
func (s *Store) ExpiresAt(ctx context.Context) (time.Time, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return jwt.Expiration(token)
}

// Status inspects the stored token at the current time.
func (s *Store) Status(ctx context.Context) (Status, error) {
	token, err := s.Token(ctx)
	if errors.Is(err, ErrMissingToken) {
		return StatusAbsent, nil
	}
	if err != nil {
		return StatusAbsent, err
	}
	return s.Check(token, s.now()), nil
}

// Authorize returns the stored token if it can still be used.
func (s *Store) Authorize(ctx context.Context) (string, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return "", err
	}
	if s.Check(token, s.now()) == StatusExpired {
		return "", ErrExpiredToken
	}
	return token, nil
}
