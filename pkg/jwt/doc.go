// Package jwt provides a compact RFC 7519 JSON Web Token implementation using HMAC-SHA256,
// plus unverified payload decoding for clients that hold a token they cannot verify.
//
// # Client-side inspection
//
// A storefront client receives a bearer token from the backend and only needs its
// expiry claim to decide when to warn the user or force a new login:
//
//	exp, err := jwt.Expiration(token)
//	if err != nil {
//		// malformed token or no exp claim: treat as expired
//	}
//
// Decode fills any JSON-compatible claims value without checking the signature:
//
//	var claims jwt.StandardClaims
//	if err := jwt.Decode(token, &claims); err != nil {
//		return err
//	}
//
// # Signing and verification
//
// Service signs and verifies tokens with a shared secret. It is used by tooling and
// tests that have to mint tokens the way the backend does:
//
//	service, err := jwt.NewFromString("your-256-bit-secret")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	token, err := service.Generate(jwt.StandardClaims{
//		Subject:   "alice@example.com",
//		ExpiresAt: time.Now().Add(time.Hour).Unix(),
//		IssuedAt:  time.Now().Unix(),
//	})
//
//	var claims jwt.StandardClaims
//	err = service.Parse(token, &claims)
//	switch {
//	case errors.Is(err, jwt.ErrExpiredToken):
//	case errors.Is(err, jwt.ErrInvalidSignature):
//	}
//
// # Errors
//
//   - ErrInvalidToken: malformed structure, undecodable segment, or nbf in the future
//   - ErrExpiredToken: exp is in the past
//   - ErrInvalidSignature: signature verification failed
//   - ErrUnexpectedSigningMethod: header alg is not HS256
//   - ErrMissingSigningKey: service created without a key
//   - ErrMissingClaims: Generate called with nil claims
//   - ErrMissingExpiration: token has no exp claim
package jwt
