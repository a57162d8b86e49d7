package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const algHS256 = "HS256"

type header struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

// Service signs and verifies HS256 tokens.
type Service struct {
	key []byte
	now func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the time source used for temporal claim validation.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Service with the given signing key.
func New(key []byte, opts ...ServiceOption) (*Service, error) {
	if len(key) == 0 {
		return nil, ErrMissingSigningKey
	}
	s := &Service{key: key, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewFromString creates a Service from a string key.
func NewFromString(key string, opts ...ServiceOption) (*Service, error) {
	return New([]byte(key), opts...)
}

// Generate signs claims and returns the compact token.
func (s *Service) Generate(claims any) (string, error) {
	if claims == nil {
		return "", ErrMissingClaims
	}

	h, err := json.Marshal(header{Alg: algHS256, Typ: "JWT"})
	if err != nil {
		return "", err
	}
	p, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("jwt: marshal claims: %w", err)
	}

	unsigned := base64.RawURLEncoding.EncodeToString(h) + "." + base64.RawURLEncoding.EncodeToString(p)
	return unsigned + "." + s.sign(unsigned), nil
}

// Parse verifies token and unmarshals its payload into claims.
// The exp and nbf claims are validated when present.
func (s *Service) Parse(token string, claims any) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return ErrInvalidToken
	}

	rawHeader, err := decodeSegment(parts[0])
	if err != nil {
		return ErrInvalidToken
	}
	var h header
	if err := json.Unmarshal(rawHeader, &h); err != nil {
		return ErrInvalidToken
	}
	if h.Alg != algHS256 {
		return ErrUnexpectedSigningMethod
	}

	expected := s.sign(parts[0] + "." + parts[1])
	if !hmac.Equal([]byte(expected), []byte(parts[2])) {
		return ErrInvalidSignature
	}

	var std StandardClaims
	if err := Decode(token, &std); err != nil {
		return err
	}
	if err := std.Valid(s.now()); err != nil {
		return err
	}

	return Decode(token, claims)
}

func (s *Service) sign(unsigned string) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(unsigned))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
