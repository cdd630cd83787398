package googleauth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/boomtruck/siteapi/internal/apperrors"
)

// The state token binds the provider callback to a request this service
// actually issued: a random nonce (jti), an issue timestamp and the return
// path, signed so the callback can verify it was not forged.
type stateClaims struct {
	jwt.RegisteredClaims
	ReturnTo string `json:"rt,omitempty"`
}

func (s *Service) signState(returnTo string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, stateClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.StateTTL)),
		},
		ReturnTo: returnTo,
	})
	return token.SignedString([]byte(s.cfg.StateSecret))
}

// verifyState checks signature and age and returns the embedded return path.
// Any failure maps to apperrors.ErrStateInvalid: the accompanying code must
// not be trusted.
func (s *Service) verifyState(state string) (string, error) {
	claims := &stateClaims{}
	token, err := jwt.ParseWithClaims(
		state,
		claims,
		func(t *jwt.Token) (any, error) { return []byte(s.cfg.StateSecret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", fmt.Errorf("state rejected: %w", apperrors.ErrStateInvalid)
	}
	return claims.ReturnTo, nil
}
