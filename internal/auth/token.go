package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenMalformed is returned when a token cannot be decoded, carries the
// wrong signature, or was signed with an unexpected algorithm.
var ErrTokenMalformed = errors.New("malformed token")

// ErrTokenExpired is returned when a token's expiry has passed.
var ErrTokenExpired = errors.New("token expired")

// ErrMissingSubject is returned when a valid token carries no subject claim.
var ErrMissingSubject = errors.New("token has no subject claim")

// Claims embeds the registered claims plus the user identifier, matching the
// shape the mobile client's tokens have always carried.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// TokenService issues and verifies HS256-signed bearer tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService signing with the given symmetric
// secret. Tokens expire ttl after issuance.
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl, now: time.Now}
}

// Issue creates a signed token whose subject is userID, expiring at
// issuance time + ttl.
func (s *TokenService) Issue(userID string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: userID,
	})

	return token.SignedString(s.secret)
}

// Verify parses and validates a token and returns its subject identifier.
// Only HS256 is accepted; tokens claiming any other algorithm are rejected
// as malformed. Expiry is exclusive: a token presented exactly at its
// expiry instant is already expired.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenMalformed
	}

	if !token.Valid {
		return "", ErrTokenMalformed
	}

	if claims.UserID == "" {
		return "", ErrMissingSubject
	}

	return claims.UserID, nil
}
