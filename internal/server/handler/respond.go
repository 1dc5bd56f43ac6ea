// Package handler exposes the lifecycle operations over HTTP. Every response
// is the uniform result shape: {"ok":true, ...} on success, {"ok":false,
// "error":"..."} with a mapped status on failure. Handlers never let a fault
// escape; unexpected errors become a logged generic 500.
package handler

import (
	"encoding/json"
	"net/http"

	"paperbase/internal/fault"
	"paperbase/internal/logs"
)

func respond(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondOK(w http.ResponseWriter, extra map[string]any) {
	body := map[string]any{"ok": true}
	for k, v := range extra {
		body[k] = v
	}
	respond(w, http.StatusOK, body)
}

// respondError maps the fault taxonomy onto HTTP statuses. Anything outside
// the taxonomy is an internal error and its detail stays in the log.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"
	switch fault.KindOf(err) {
	case fault.KindValidation:
		status = http.StatusBadRequest
		msg = err.Error()
	case fault.KindConflict:
		status = http.StatusConflict
		msg = err.Error()
	case fault.KindNotFound:
		status = http.StatusNotFound
		msg = err.Error()
	case fault.KindUnauthorized:
		status = http.StatusUnauthorized
		msg = err.Error()
	case fault.KindForbidden:
		status = http.StatusForbidden
		msg = err.Error()
	default:
		logs.Logger.Errorf("internal error: %v", err)
	}
	respond(w, status, map[string]any{"ok": false, "error": msg})
}
