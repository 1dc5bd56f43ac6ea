package middleware

import (
	"net/http"
	"strings"

	"paperbase/internal/session"
)

// Route guard paths. The guard is coarse gatekeeping for page routes only;
// API calls bypass it and are authorized at the operation.
const (
	loginPath     = "/login"
	dashboardPath = "/company/dashboard"
)

var protectedPrefixes = []string{"/company", "/admin"}

var excludedPrefixes = []string{"/api/", "/static/", "/healthz", "/readyz"}

// Guard is the per-request route state machine, evaluated once before any
// page handler. No session on a protected route redirects to the sign-in
// page; an existing session on the sign-in page redirects to the dashboard;
// everything else passes through. The check is presence-only: the cookie is
// not validated here.
func Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		for _, p := range excludedPrefixes {
			if strings.HasPrefix(path, p) {
				next.ServeHTTP(w, r)
				return
			}
		}
		hasSession := session.Present(r)
		if !hasSession && isProtected(path) {
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}
		if hasSession && isAuthEntry(path) {
			http.Redirect(w, r, dashboardPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isProtected(path string) bool {
	for _, p := range protectedPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

func isAuthEntry(path string) bool {
	return path == loginPath || strings.HasPrefix(path, loginPath+"/")
}
