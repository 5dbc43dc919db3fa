package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tasktracker/internal/domain"
)

var (
	// ErrSigningKeyMissing indicates the token signing key is not configured.
	ErrSigningKeyMissing = errors.New("token signing key is not configured")
	// ErrInvalidToken indicates a token that failed signature, expiry or
	// subject checks.
	ErrInvalidToken = errors.New("invalid token")
)

const defaultExpireMinutes = 60

// TokenConfig carries the signing material and claim values for issued
// tokens. It is passed in at construction; the issuer performs no ambient
// configuration lookups.
type TokenConfig struct {
	SigningKey    string
	Issuer        string
	Audience      string
	ExpireMinutes int
}

// Claims is the JWT payload asserting a user's identity.
type Claims struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer creates and decodes signed, time-bounded identity tokens.
// Every call is independent; nothing is persisted between them.
type TokenIssuer struct {
	cfg TokenConfig
}

func NewTokenIssuer(cfg TokenConfig) *TokenIssuer {
	if cfg.ExpireMinutes <= 0 {
		cfg.ExpireMinutes = defaultExpireMinutes
	}
	return &TokenIssuer{cfg: cfg}
}

// Issue signs an HS256 token with subject, username and email claims for the
// given user. It fails with ErrSigningKeyMissing when no key is configured so
// callers never hand out an unsigned token.
func (t *TokenIssuer) Issue(user *domain.User) (string, error) {
	if t.cfg.SigningKey == "" {
		return "", ErrSigningKeyMissing
	}

	now := time.Now().UTC()
	claims := Claims{
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    t.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(t.cfg.ExpireMinutes) * time.Minute)),
		},
	}
	if t.cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{t.cfg.Audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(t.cfg.SigningKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Decode validates a token and extracts the subject user id. Signature,
// expiry and subject failures all surface as ErrInvalidToken.
func (t *TokenIssuer) Decode(tokenString string) (uuid.UUID, error) {
	if t.cfg.SigningKey == "" {
		return uuid.Nil, ErrSigningKeyMissing
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(t.cfg.SigningKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: subject claim: %v", ErrInvalidToken, err)
	}
	return id, nil
}
