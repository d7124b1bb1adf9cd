package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mlakar/givehub/internal/auth"
	"github.com/mlakar/givehub/internal/session"
)

type contextKey string

const userIDKey contextKey = "userID"

// SessionCookie is the name of the cookie carrying the opaque session id.
const SessionCookie = "session"

// AuthMiddleware authenticates a request from either the session cookie
// or a Bearer API token, and puts the user id on the context. It knows
// nothing about business rules beyond identity presence.
func AuthMiddleware(sessions session.Store, jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := authenticate(r, sessions, jwtSecret)
			if !ok {
				jsonError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authenticate(r *http.Request, sessions session.Store, jwtSecret string) (int64, bool) {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		userID, ok, err := sessions.Read(r.Context(), cookie.Value)
		if err != nil {
			slog.Error("reading session", "error", err)
			return 0, false
		}
		if ok {
			return userID, true
		}
	}

	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		claims, err := auth.ValidateToken(jwtSecret, strings.TrimPrefix(header, "Bearer "))
		if err == nil {
			return claims.UserID, true
		}
	}

	return 0, false
}

// UserID retrieves the authenticated user id from the context. Zero means
// the request was not authenticated.
func UserID(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs HTTP requests with method, path, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.RequestURI(),
			"status", rec.status,
			"duration", time.Since(start).Round(time.Millisecond))
	})
}
