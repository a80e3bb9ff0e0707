package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
)

// SessionName is the cookie under which the login session travels.
const SessionName = "crowdcount_session"

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

// UserIDContextKey is the key used to store the caller's user id in the
// request context.
const UserIDContextKey ContextKey = "user_id"

// SessionContext reads the session cookie and, when a login is present, puts
// the user id into the request context. Requests without a valid session pass
// through untouched: most write paths accept an unauthenticated caller and
// simply scope nothing to an owner.
func SessionContext(store sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, SessionName)
			if err == nil {
				if raw, ok := session.Values["user_id"]; ok {
					if id, ok := raw.(uint); ok {
						ctx := context.WithValue(r.Context(), UserIDContextKey, id)
						r = r.WithContext(ctx)
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CurrentUserID returns the authenticated caller's id, or nil for an
// unauthenticated request.
func CurrentUserID(r *http.Request) *uint {
	if id, ok := r.Context().Value(UserIDContextKey).(uint); ok {
		return &id
	}
	return nil
}

// RequireUser guards endpoints that only make sense for a logged-in caller.
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if CurrentUserID(r) == nil {
			WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "login required")
			return
		}
		next(w, r)
	}
}
