package sqlite

import "errors"

var (
	ErrEmptyPath               = errors.New("sqlite database path is empty")
	ErrFailedToOpenDB          = errors.New("failed to open sqlite database")
	ErrFailedToApplyMigrations = errors.New("failed to apply migrations")
	ErrNilDB                   = errors.New("sqlite database is nil")
)
