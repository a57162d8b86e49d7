package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNilConfig is returned when Load receives a nil pointer.
var ErrNilConfig = errors.New("config: nil pointer")

var (
	cache    sync.Map // reflect.Type -> any (value, not pointer)
	envOnce  sync.Once
	envErr   error
	envMu    sync.Mutex
	envFiles = []string{".env"}
)

// SetEnvFiles overrides the env files read on first Load.
// Has no effect once the files were loaded, unless Reset is called.
func SetEnvFiles(files ...string) {
	envMu.Lock()
	defer envMu.Unlock()
	envFiles = files
}

// Load parses environment variables into cfg. The parsed value is cached per type,
// so subsequent calls with the same type copy the cached value without re-reading the environment.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}

	key := reflect.TypeFor[T]()
	if cached, ok := cache.Load(key); ok {
		*cfg = cached.(T)
		return nil
	}

	if err := loadEnvFiles(); err != nil {
		return err
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", key, err)
	}

	actual, _ := cache.LoadOrStore(key, parsed)
	*cfg = actual.(T)
	return nil
}

// MustLoad is like Load but panics on error.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Reset drops all cached configurations and allows env files to be re-read.
func Reset() {
	cache.Range(func(k, _ any) bool {
		cache.Delete(k)
		return true
	})

	envMu.Lock()
	envOnce = sync.Once{}
	envErr = nil
	envMu.Unlock()
}

func loadEnvFiles() error {
	envMu.Lock()
	defer envMu.Unlock()

	envOnce.Do(func() {
		for _, f := range envFiles {
			if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
				envErr = fmt.Errorf("config: load %s: %w", f, err)
				return
			}
		}
	})

	return envErr
}
