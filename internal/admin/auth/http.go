package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// ErrorWriter renders an auth failure. The default is http.Error.
type ErrorWriter func(w http.ResponseWriter, status int, code, message string)

type Middleware struct {
	verifier TokenVerifier
	allow    *Allowlist
	log      *slog.Logger
	onError  ErrorWriter
}

func NewMiddleware(verifier TokenVerifier, allow *Allowlist, log *slog.Logger, onError ErrorWriter) *Middleware {
	if log == nil {
		log = slog.Default()
	}
	if onError == nil {
		onError = func(w http.ResponseWriter, status int, _, message string) {
			http.Error(w, message, status)
		}
	}
	return &Middleware{verifier: verifier, allow: allow, log: log, onError: onError}
}

func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.verifier == nil {
			m.onError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "admin auth not configured")
			return
		}

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			m.onError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing bearer token")
			return
		}

		email, err := Authenticate(r.Context(), m.verifier, m.allow, strings.TrimPrefix(header, "Bearer "))
		switch {
		case errors.Is(err, ErrForbidden):
			m.log.WarnContext(r.Context(), "admin access denied", slog.String("path", r.URL.Path))
			m.onError(w, http.StatusForbidden, "PERMISSION_DENIED", "not an admin")
			return
		case err != nil:
			m.onError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithEmail(r.Context(), email)))
	})
}
