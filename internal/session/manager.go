// Package session carries the signed session token in an HTTP cookie.
// Sessions are stateless: the token is the only artifact, valid for a fixed
// seven days, and there is no server-side revocation list. Logout only
// instructs the client to discard the cookie.
package session

import (
	"net/http"
	"time"

	"paperbase/internal/security"
)

// CookieName is the single session cookie. The historical split between an
// application-wide admin cookie and a company-scoped cookie is gone; the
// scope claim inside the token discriminates instead.
const CookieName = "session"

// Manager issues, reads, and clears the session cookie.
type Manager struct {
	tokens *security.TokenProvider
	secure bool
}

// NewManager returns a Manager. secure controls the cookie's Secure flag and
// should be true in production.
func NewManager(tokens *security.TokenProvider, secure bool) *Manager {
	return &Manager{tokens: tokens, secure: secure}
}

// Issue signs a session token for the given identity and sets it as an
// HTTP-only, SameSite=Lax cookie. Returns the token's absolute expiry.
func (m *Manager) Issue(w http.ResponseWriter, userID, companyID, companySlug, role string, scope security.Scope) (time.Time, error) {
	token, expiresAt, err := m.tokens.IssueSession(userID, companyID, companySlug, role, scope)
	if err != nil {
		return time.Time{}, err
	}
	m.Set(w, token)
	return expiresAt, nil
}

// Set writes an already-issued token as the session cookie.
func (m *Manager) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.tokens.SessionTTL() / time.Second),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read returns the validated session claims from the request cookie. An
// absent, malformed, or expired cookie degrades to (nil, false); it never
// fails the request.
func (m *Manager) Read(r *http.Request) (*security.SessionClaims, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil, false
	}
	claims, err := m.tokens.ValidateSession(c.Value)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// Clear instructs the client to discard the session cookie (logout). The
// token itself stays valid until its natural expiry.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Present reports whether a session cookie is present at all, without
// validating it. The route guard needs only presence; validation happens at
// the operations themselves.
func Present(r *http.Request) bool {
	c, err := r.Cookie(CookieName)
	return err == nil && c.Value != ""
}
