// Package redis connects to Redis and exposes it as a storage.Storage backend,
// so carts, wishlists and session keys can be shared between processes.
//
// Connect parses a redis:// or rediss:// URL, pings the server with
// exponential backoff and returns a ready client. Healthcheck wraps a ping for
// readiness probes.
//
//	client, err := redis.Connect(ctx, redis.Config{
//		ConnectionURL:  "redis://localhost:6379/0",
//		RetryAttempts:  3,
//		RetryInterval:  time.Second,
//		ConnectTimeout: 10 * time.Second,
//	})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	backend := redis.NewStorage(client, redis.WithPrefix("storefront:"))
//	wishlist, err := wishlist.New(backend, log)
//
// Values are plain strings. A missing key maps to storage.ErrNotFound and any
// other Redis failure is joined with storage.ErrUnavailable.
package redis
