package handler

import (
	"net/http"

	identityservice "paperbase/internal/identity/service"
	"paperbase/internal/security"
	"paperbase/internal/session"
)

// AuthHandler serves sign-in and sign-out.
type AuthHandler struct {
	auth     *identityservice.AuthService
	sessions *session.Manager
}

// NewAuthHandler returns an AuthHandler.
func NewAuthHandler(auth *identityservice.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

// SignIn handles POST /api/auth/sign-in. Form fields: email, password, and an
// optional scope ("tenant" default, "platform" for the operator console).
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, err)
		return
	}
	scope := security.ScopeTenant
	if r.PostFormValue("scope") == string(security.ScopePlatform) {
		scope = security.ScopePlatform
	}
	res, err := h.auth.SignIn(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"), scope)
	if err != nil {
		respondError(w, err)
		return
	}
	h.sessions.Set(w, res.Token)
	respondOK(w, map[string]any{
		"companySlug": res.CompanySlug,
		"role":        res.Role.DisplayName(),
	})
}

// SignOut handles POST /api/auth/sign-out. It clears the cookie; the token
// itself stays valid until expiry.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	respondOK(w, nil)
}
