// Package auth implements the session token contract and password hashing.
//
// A session is a signed JWT binding a single username claim, carried in an
// HTTP-only strict-same-site cookie. Verification failures of any kind fall
// open to anonymous rather than raising.
package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
)

const (
	// CookieName is the session cookie carrying the signed token.
	CookieName = "authToken"
	// TokenTTL is the session lifetime from issuance.
	TokenTTL = 7 * 24 * time.Hour
)

type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies session tokens over a shared symmetric secret.
// secure controls the cookie Secure attribute; it is off in development so
// sessions work over plain HTTP.
type Sessions struct {
	secret []byte
	secure bool
	clock  clockwork.Clock
}

func NewSessions(secret string, secure bool, clock clockwork.Clock) *Sessions {
	return &Sessions{secret: []byte(secret), secure: secure, clock: clock}
}

// Issue signs a token for the username, expiring TokenTTL from now.
func (s *Sessions) Issue(username string) (token string, expires time.Time, err error) {
	now := s.clock.Now()
	expires = now.Add(TokenTTL)

	claims := sessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, expires, nil
}

// Verify checks the signature and expiry and returns the username claim.
// Any failure (expired, tampered, wrong algorithm, empty claim) is an error;
// callers treat it identically to "no session".
func (s *Sessions) Verify(token string) (string, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return "", fmt.Errorf("invalid session token: %w", err)
	}
	if claims.Username == "" {
		return "", fmt.Errorf("session token carries no username")
	}
	return claims.Username, nil
}

// Cookie wraps a signed token in the session cookie.
func (s *Sessions) Cookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  expires,
	}
}

// ClearCookie returns an expired session cookie, logging the caller out.
func (s *Sessions) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	}
}
