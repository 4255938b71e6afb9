package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"DocPortal/internal/apperror"
	"DocPortal/internal/middleware"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the service error contract onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperror.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperror.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperror.ErrForbidden):
		status = http.StatusForbidden
	}

	resp := errorResponse{Error: err.Error()}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		resp.Field = appErr.Field
	}
	if status == http.StatusInternalServerError {
		// storage details stay in the logs, not in the response body
		resp = errorResponse{Error: "internal error"}
	}
	writeJSON(w, status, resp)
}

// identity returns the verified claims or answers 401. Tokens are issued by
// the external identity provider; anonymous requests reach no API route.
func identity(w http.ResponseWriter, r *http.Request) (*middleware.Claims, bool) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return nil, false
	}
	return claims, true
}

// requireAdmin gates mutating routes: 401 without identity, 403 for any
// non-admin role.
func requireAdmin(w http.ResponseWriter, r *http.Request) (*middleware.Claims, bool) {
	claims, ok := identity(w, r)
	if !ok {
		return nil, false
	}
	if claims.Role != middleware.RoleAdmin {
		writeError(w, apperror.Forbidden("admin role required"))
		return nil, false
	}
	return claims, true
}
