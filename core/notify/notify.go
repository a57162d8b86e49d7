// Package notify abstracts the user-facing side effects of the client core:
// one-time alerts, the dismissible session banner, and navigation.
//
// The session monitor and the API client only talk to these interfaces, so a
// terminal front end, a server-rendered page or a test recorder can each
// supply their own implementation.
package notify

import (
	"context"
	"time"
)

// Level classifies an alert.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notifier shows messages to the user.
type Notifier interface {
	// Alert shows a one-time notice.
	Alert(ctx context.Context, level Level, message string)
	// ShowBanner shows a dismissible banner that hides itself after ttl.
	// Implementations ignore the call while a banner is visible.
	ShowBanner(ctx context.Context, message string, ttl time.Duration)
	// DismissBanner hides the banner if one is visible.
	DismissBanner(ctx context.Context)
	// BannerVisible reports whether a banner is currently shown.
	BannerVisible() bool
}

// Navigator exposes the current view and moves between views.
type Navigator interface {
	CurrentPath() string
	Redirect(ctx context.Context, path string)
}
