package storage

import "errors"

var (
	ErrNotFound      = errors.New("storage: key not found")
	ErrQuotaExceeded = errors.New("storage: quota exceeded")
	ErrUnavailable   = errors.New("storage: backend unavailable")
	ErrEmptyKey      = errors.New("storage: empty key")
)
