package api

import (
	"net/http"

	"github.com/mlakar/givehub/internal/service"
	"github.com/mlakar/givehub/internal/session"
	"github.com/mlakar/givehub/internal/store"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(st store.Store, sessions session.Store, svc *service.Donations, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	usersHandler := &UsersHandler{Store: st, Sessions: sessions, JWTSecret: jwtSecret}
	donationsHandler := &DonationsHandler{Store: st, Service: svc}
	requestsHandler := &RequestsHandler{Store: st, Service: svc}
	contactHandler := &ContactHandler{Store: st}

	authMW := AuthMiddleware(sessions, jwtSecret)

	// Public: account creation, credentials, browsing, contact form.
	mux.HandleFunc("POST /api/users/register", usersHandler.Register)
	mux.HandleFunc("POST /api/users/login", usersHandler.Login)
	mux.HandleFunc("POST /api/users/logout", usersHandler.Logout)
	mux.HandleFunc("POST /api/users/token", usersHandler.Token)
	mux.HandleFunc("GET /api/donations", donationsHandler.List)
	mux.HandleFunc("GET /api/donations/{id}", donationsHandler.Get)
	mux.HandleFunc("POST /api/contact", contactHandler.Create)

	// Authenticated routes.
	mux.Handle("GET /api/users/me", authMW(http.HandlerFunc(usersHandler.Me)))
	mux.Handle("GET /api/users/me/donations", authMW(http.HandlerFunc(donationsHandler.Mine)))
	mux.Handle("GET /api/users/me/requests", authMW(http.HandlerFunc(requestsHandler.Mine)))
	mux.Handle("POST /api/donations", authMW(http.HandlerFunc(donationsHandler.Create)))
	mux.Handle("PATCH /api/donations/{id}/status", authMW(http.HandlerFunc(donationsHandler.UpdateStatus)))
	mux.Handle("GET /api/donations/{id}/requests", authMW(http.HandlerFunc(donationsHandler.Requests)))
	mux.Handle("POST /api/requests", authMW(http.HandlerFunc(requestsHandler.Create)))

	return mux
}
