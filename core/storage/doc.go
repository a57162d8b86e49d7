// Package storage defines the key-value persistence capability used by the
// storefront client for its small pieces of state: the cart, the wishlist and
// the session token.
//
// Components depend on the Storage interface only. The package ships two
// in-process implementations:
//
//   - Memory: a mutex-protected map with an optional byte quota
//   - Noop: discards writes and reports every key as missing, for execution
//     contexts that have no persistence (tests, server-rendered paths)
//
// Durable backends live under integration/database (sqlite, redis, pg).
//
// # Usage
//
//	store := storage.NewMemory(storage.WithQuota(5 << 20))
//
//	if err := store.Set(ctx, "token", tok); err != nil {
//		return err
//	}
//
//	tok, err := store.Get(ctx, "token")
//	if errors.Is(err, storage.ErrNotFound) {
//		// not logged in
//	}
//
// # Errors
//
//   - ErrNotFound: Get on a key that was never set or was removed
//   - ErrQuotaExceeded: Set would grow the store past its quota
//   - ErrUnavailable: the backend cannot be reached
//   - ErrEmptyKey: an operation was called with an empty key
package storage
