package middleware

import "net/http"

type contextKey string

const UserIDKey contextKey = "user_id"

// RequireUser rejects requests with no onboarded user in the session.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value(UserIDKey)
		if userID == nil || userID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"not onboarded"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
