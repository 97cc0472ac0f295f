package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/halitkalayci/gyk-backend/internal/domain/apperrors"
	"github.com/halitkalayci/gyk-backend/internal/infra/config"
)

// DefaultTTL is the fallback expiry used when Issue is called with a
// non-positive ttl. The gateway normally passes the configured TTL instead.
const DefaultTTL = 15 * time.Minute

// Util issues and verifies compact HS256 session tokens. The subject claim
// is the user's email; expiry is the only invalidation mechanism, there is
// no server-side revocation list.
type Util struct {
	secret []byte
	ttl    time.Duration
}

func NewUtil(cfg *config.Config) *Util {
	return &Util{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.AccessTokenTTL,
	}
}

// TTL returns the configured default token lifetime.
func (u *Util) TTL() time.Duration {
	return u.ttl
}

// Issue signs a token carrying subject that expires ttl from now.
func (u *Util) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
	if err != nil {
		return "", apperrors.WrapInternal(err, "sign token")
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the subject claim.
// Failure kinds stay distinguishable for logging; callers collapse them all
// into a single unauthorized outcome.
func (u *Util) Verify(raw string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, apperrors.ErrMalformedToken
		}
		return u.secret, nil
	})

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", apperrors.ErrExpiredToken
	case err != nil:
		return "", apperrors.ErrMalformedToken
	case !token.Valid:
		return "", apperrors.ErrMalformedToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", apperrors.ErrMalformedToken
	}
	if claims.Subject == "" {
		return "", apperrors.ErrMissingSubject
	}

	return claims.Subject, nil
}
