package session

import "errors"

var (
	// ErrMissingToken is returned when no token is stored.
	ErrMissingToken = errors.New("session token is missing")
	// ErrExpiredToken is returned when the stored token is expired or unreadable.
	ErrExpiredToken = errors.New("session token has expired")
	// ErrNilStorage is returned when a store is created without a backend.
	ErrNilStorage = errors.New("session storage is nil")
	// ErrNilNotifier is returned when a manager is created without a notifier or navigator.
	ErrNilNotifier = errors.New("session notifier and navigator are required")
	// ErrSaveSession is returned when credentials cannot be persisted.
	ErrSaveSession = errors.New("failed to save session")
	// ErrClearSession is returned when one of the session keys cannot be removed.
	ErrClearSession = errors.New("failed to clear session")
	// ErrInvalidUser is returned when the stored user profile cannot be decoded.
	ErrInvalidUser = errors.New("stored user profile is invalid")
)
