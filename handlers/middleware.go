package handlers

import (
	"context"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"stockdesk/services"
)

type contextKey string

const SessionKey contextKey = "session"

// SessionFrom extracts the authenticated session from the request context.
func SessionFrom(r *http.Request) *services.Session {
	if val, ok := r.Context().Value(SessionKey).(*services.Session); ok {
		return val
	}
	return nil
}

// withSession returns a copy of r carrying sess.
func withSession(r *http.Request, sess *services.Session) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), SessionKey, sess))
}

// RequireAuth resolves the bearer token in the Authorization header and
// stores the session in the request context. Requests without a valid,
// unexpired token are rejected with 401.
func RequireAuth(identity *services.Identity) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		sess, err := identity.Authenticate(e.Request.Header.Get("Authorization"))
		if err != nil {
			return respondError(e, http.StatusUnauthorized, "Not authenticated")
		}
		e.Request = withSession(e.Request, sess)
		return e.Next()
	}
}

// ownerID returns the id of the authenticated user, or "" when the request
// did not pass through RequireAuth.
func ownerID(e *core.RequestEvent) string {
	if sess := SessionFrom(e.Request); sess != nil {
		return sess.UserID
	}
	return ""
}
