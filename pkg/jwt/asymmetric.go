package jwt

import (
	"crypto/rsa"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// asymmetricSigner signs portal tokens with an RS256 key pair. Verifiers only
// need the public key, which lets the shipper portal run without access to
// the signing material.
type asymmetricSigner struct {
	privateKey *rsa.PrivateKey
}

func (s *asymmetricSigner) Sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(s.privateKey)
}

// NewAsymmetric creates a Manager backed by an RS256 key pair.
func NewAsymmetric(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, issuer string) (*Manager, error) {
	if privateKey == nil {
		return nil, fmt.Errorf("private key cannot be nil")
	}
	if publicKey == nil {
		return nil, fmt.Errorf("public key cannot be nil")
	}

	keyFunc := func(token *jwt.Token) (interface{}, error) {
		// Reject tokens signed under a different scheme before touching the key.
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return publicKey, nil
	}

	return &Manager{
		signer:  &asymmetricSigner{privateKey: privateKey},
		issuer:  issuer,
		keyFunc: keyFunc,
	}, nil
}
