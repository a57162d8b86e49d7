package jwt

import "time"

// StandardClaims holds the RFC 7519 registered claims.
type StandardClaims struct {
	ID        string `json:"jti,omitempty"`
	Subject   string `json:"sub,omitempty"`
	Issuer    string `json:"iss,omitempty"`
	Audience  string `json:"aud,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`
	NotBefore int64  `json:"nbf,omitempty"`
	IssuedAt  int64  `json:"iat,omitempty"`
}

// Valid checks the temporal claims against now.
func (c StandardClaims) Valid(now time.Time) error {
	if c.ExpiresAt != 0 && now.Unix() >= c.ExpiresAt {
		return ErrExpiredToken
	}
	if c.NotBefore != 0 && now.Unix() < c.NotBefore {
		return ErrInvalidToken
	}
	return nil
}
