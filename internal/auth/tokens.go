package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultTokenTTL = time.Hour

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid bearer token")
	ErrMissingKey   = errors.New("jwt secret not set")
)

type tokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and validates HS256 access tokens.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewTokenIssuer(secret, issuer string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, ErrMissingKey
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

func (ti *TokenIssuer) Issue(userID int64, username string, now time.Time) (string, *Claims, error) {
	claims := &Claims{
		UserID:    userID,
		Username:  username,
		TokenID:   uuid.NewString(),
		ExpiresAt: now.Add(ti.ttl).Truncate(time.Second),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    ti.issuer,
			ID:        claims.TokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	})

	signed, err := token.SignedString(ti.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// Parse validates signature, issuer and expiry and returns the caller claims.
func (ti *TokenIssuer) Parse(token string) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}

	tc := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, tc, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ti.secret, nil
	}, jwt.WithIssuer(ti.issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(tc.Subject, 10, 64)
	if err != nil || userID <= 0 || tc.ID == "" || tc.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	return &Claims{
		UserID:    userID,
		Username:  tc.Username,
		TokenID:   tc.ID,
		ExpiresAt: tc.ExpiresAt.Time,
	}, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	const prefix = "bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
