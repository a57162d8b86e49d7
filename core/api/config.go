package api

import "time"

// DefaultFallbackBaseURL is used when no base URL is configured and strict mode is off.
const DefaultFallbackBaseURL = "https://ci-cd-jikgumate-1.onrender.com"

// Config holds API client configuration.
type Config struct {
	BaseURL         string        `env:"API_BASE_URL"`
	FallbackBaseURL string        `env:"API_FALLBACK_BASE_URL" envDefault:"https://ci-cd-jikgumate-1.onrender.com"`
	StrictBaseURL   bool          `env:"API_STRICT_BASE_URL" envDefault:"false"`
	StripAPISuffix  bool          `env:"API_STRIP_API_SUFFIX" envDefault:"false"`
	Timeout         time.Duration `env:"API_TIMEOUT" envDefault:"15s"`
}

// NewFromConfig creates a Client from cfg. Options are applied after the config.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	var urlOpts []BaseURLOption
	if cfg.StripAPISuffix {
		urlOpts = append(urlOpts, WithStripAPISuffix())
	}

	base := []Option{
		WithResolver(ConfigResolver(cfg, urlOpts...)),
	}
	if cfg.Timeout > 0 {
		base = append(base, WithTimeout(cfg.Timeout))
	}
	return New(append(base, opts...)...)
}
