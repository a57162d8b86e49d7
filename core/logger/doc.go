// Package logger provides structured logging utilities built on Go's standard slog package.
//
// It offers environment-specific logger construction and a set of nil-safe attribute
// helpers for the storefront client components (storage, session monitor, API client).
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/storefront/core/logger"
//
//	// Development: text format, debug level, stdout
//	log := logger.New(logger.WithDevelopment("storefront"))
//
//	// Production: JSON format, info level, stdout
//	log := logger.New(
//		logger.WithProduction("storefront"),
//		logger.WithOutput(os.Stderr),
//	)
//
//	log.Info("cart updated",
//		logger.Component("cart"),
//		logger.ProductID(7),
//		logger.Count("quantity", 3),
//	)
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for zero input, which slog drops, so calls like
// log.Error("save failed", logger.Error(err)) need no nil checks:
//
//	log.Error("failed to persist list",
//		logger.Error(err),
//		logger.StorageKey("jikgumate_cart"),
//	)
//
// Email masks the local part so account addresses never reach log sinks verbatim:
//
//	logger.Email("alice@example.com") // email=a****@example.com
package logger
