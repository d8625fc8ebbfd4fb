package token

import (
	"time"

	"github.com/Peter3Khalil/DocTalker-Backend/pkg/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/m-mizutani/goerr/v2"
)

// Issuer signs and verifies the bearer tokens attached to API requests
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

type Option func(*Issuer)

// WithTTL sets the token lifetime
func WithTTL(ttl time.Duration) Option {
	return func(i *Issuer) {
		i.ttl = ttl
	}
}

// NewIssuer creates a new token issuer with the given HMAC secret
func NewIssuer(secret string, opts ...Option) (*Issuer, error) {
	if secret == "" {
		return nil, goerr.New("token secret is empty")
	}

	issuer := &Issuer{
		secret: []byte(secret),
		ttl:    24 * time.Hour,
	}

	for _, opt := range opts {
		opt(issuer)
	}

	return issuer, nil
}

// Issue creates a signed token for the given user
func (i *Issuer) Issue(userID model.UserID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   string(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", goerr.Wrap(err, "failed to sign token", goerr.V("user_id", userID))
	}

	return signed, nil
}

// Verify validates the token signature and expiry and returns the user
// identity it carries.
func (i *Issuer) Verify(tokenString string) (model.UserID, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, goerr.New("unexpected signing method", goerr.V("alg", t.Header["alg"]))
		}
		return i.secret, nil
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse token", goerr.T(model.ErrTagUnauthorized))
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", goerr.New("token has no subject", goerr.T(model.ErrTagUnauthorized))
	}

	return model.UserID(claims.Subject), nil
}
