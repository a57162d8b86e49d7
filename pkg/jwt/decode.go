package jwt

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Decode unmarshals the payload segment of token into claims without verifying the signature.
func Decode(token string, claims any) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[1] == "" {
		return ErrInvalidToken
	}

	payload, err := decodeSegment(parts[1])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if err := json.Unmarshal(payload, claims); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return nil
}

// Expiration returns the instant encoded in the exp claim.
func Expiration(token string) (time.Time, error) {
	var claims struct {
		ExpiresAt *json.Number `json:"exp"`
	}
	if err := Decode(token, &claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrMissingExpiration
	}

	exp, err := claims.ExpiresAt.Float64()
	if err != nil || exp <= 0 {
		return time.Time{}, ErrMissingExpiration
	}
	return time.Unix(int64(exp), 0), nil
}

// decodeSegment accepts base64url with or without padding.
func decodeSegment(seg string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(seg, "="))
}
