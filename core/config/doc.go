// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package loads a .env file on first use (missing files are ignored) and uses
// the caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/storefront/core/config"
//
//	type APIConfig struct {
//		BaseURL string        `env:"API_BASE_URL"`
//		Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`
//	}
//
//	func main() {
//		var cfg APIConfig
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per process:
//
//	var cfg1 APIConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 APIConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Use Reset in tests to drop the cache after changing the environment.
//
// # Env files
//
// By default ".env" in the working directory is read. SetEnvFiles overrides the
// list before the first Load call. Variables already present in the process
// environment are never overwritten by file values.
package config
