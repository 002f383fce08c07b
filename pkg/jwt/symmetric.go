package jwt

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// symmetricSigner signs portal tokens with a shared HS256 secret. Both the
// admin console and the shipper portal verify against the same secret, so it
// only suits single-tenant deployments.
type symmetricSigner struct {
	secret []byte
}

func (s *symmetricSigner) Sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// NewSymmetric creates a Manager backed by a shared HS256 secret.
func NewSymmetric(secret []byte, issuer string) (*Manager, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("JWT secret cannot be empty")
	}

	keyFunc := func(token *jwt.Token) (interface{}, error) {
		// Reject tokens signed under a different scheme before touching the key.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}

	return &Manager{
		signer:  &symmetricSigner{secret: secret},
		issuer:  issuer,
		keyFunc: keyFunc,
	}, nil
}
