package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrEthical07/goAdmit/identity"
)

// IdentitiesClaim is the JWT claim carrying the raw identity string.
const IdentitiesClaim = "ids"

var (
	// ErrTokenSecretRequired is returned by NewToken without key material.
	ErrTokenSecretRequired = errors.New("token provider requires a secret")
	// ErrTokenMissingIdentities is returned for valid tokens without an
	// identities claim.
	ErrTokenMissingIdentities = errors.New("token has no identities claim")
)

// Token resolves identities from an HMAC-signed JWT whose "ids" claim holds
// the raw comma-delimited identity string. The token attests to identities
// only; granted permissions still come from the ACL document.
type Token struct {
	secret []byte
}

// NewToken creates a token provider verifying HS256 signatures with secret.
func NewToken(secret []byte) (*Token, error) {
	if len(secret) == 0 {
		return nil, ErrTokenSecretRequired
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &Token{secret: key}, nil
}

// Scheme returns "token".
func (t *Token) Scheme() string {
	return "token"
}

// Authenticate verifies authData as a signed JWT and parses its identities
// claim. Expiry and not-before are enforced by the JWT library defaults.
func (t *Token) Authenticate(_ context.Context, authData []byte) (*identity.Identities, error) {
	parsed, err := jwt.Parse(string(authData), func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenMissingIdentities
	}
	raw, ok := claims[IdentitiesClaim].(string)
	if !ok || raw == "" {
		return nil, ErrTokenMissingIdentities
	}

	return identity.Parse(raw), nil
}
