// Package auth carries the user's credential context. The session is always
// passed explicitly to network calls that need it; nothing in this codebase
// reads tokens from ambient global state.
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is an authenticated user's token pair. A nil *Session means
// anonymous: read-only endpoints still work, booking does not.
type Session struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Authenticated reports whether the session carries a usable access token.
func (s *Session) Authenticated() bool {
	return s != nil && strings.TrimSpace(s.Access) != ""
}

// AccessExpired reports whether the access token's exp claim has passed.
// The token is decoded without signature verification; only the server can
// verify it, the client just needs to know when to refresh.
func (s *Session) AccessExpired(now time.Time) bool {
	if !s.Authenticated() {
		return true
	}
	exp, ok := tokenExpiry(s.Access)
	if !ok {
		return false
	}
	return !now.Before(exp)
}

// RefreshExpired reports whether the refresh token is past its exp claim,
// meaning the user has to log in again.
func (s *Session) RefreshExpired(now time.Time) bool {
	if s == nil || strings.TrimSpace(s.Refresh) == "" {
		return true
	}
	exp, ok := tokenExpiry(s.Refresh)
	if !ok {
		return false
	}
	return !now.Before(exp)
}

// Username extracts the username claim if the server put one in the token.
func (s *Session) Username() string {
	if !s.Authenticated() {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Access, claims); err != nil {
		return ""
	}
	if name, ok := claims["username"].(string); ok {
		return name
	}
	return ""
}

func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
