package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSecret is returned when tokens are requested without a signing secret
var ErrNoSecret = errors.New("api secret is not configured")

const issuer = "zendo"

// GenerateToken mints an HS256 bearer token for subject valid for ttl
func GenerateToken(secret []byte, subject string, ttl time.Duration, now time.Time) (string, error) {
	if len(secret) == 0 {
		return "", ErrNoSecret
	}

	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// ParseToken validates tokenString and returns its subject
func ParseToken(secret []byte, tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

type ctxKey string

const subjectKey ctxKey = "subject"

// Middleware rejects requests without a valid bearer token
type Middleware struct {
	secret []byte
}

// NewMiddleware creates the bearer token guard
func NewMiddleware(secret []byte) Middleware {
	return Middleware{secret: secret}
}

// Wrap guards next
func (m Middleware) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		tokenString, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || len(m.secret) == 0 {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}

		subject, err := ParseToken(m.secret, tokenString)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), subjectKey, subject)
		next(w, r.WithContext(ctx))
	}
}

// SubjectFromContext returns the token subject of an authenticated request
func SubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey).(string)
	return s, ok
}
