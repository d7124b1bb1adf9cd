package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mlakar/givehub/internal/auth"
	"github.com/mlakar/givehub/internal/model"
	"github.com/mlakar/givehub/internal/session"
	"github.com/mlakar/givehub/internal/store"
)

// UsersHandler handles registration, login, and account endpoints.
type UsersHandler struct {
	Store     store.Store
	Sessions  session.Store
	JWTSecret string
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/users/register. A successful registration
// also starts a session, so the new user is immediately authenticated.
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.FirstName == "" || req.LastName == "" {
		jsonError(w, http.StatusBadRequest, "First and last name required")
		return
	}
	if err := model.ValidateEmail(req.Email); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := model.ValidatePassword(req.Password); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	user, err := h.Store.CreateUser(r.Context(), model.NewUser{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if errors.Is(err, store.ErrEmailTaken) {
		// Observed contract: 400, not 409.
		jsonError(w, http.StatusBadRequest, "Email already in use")
		return
	}
	if err != nil {
		slog.Error("creating user", "error", err)
		jsonError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	if err := h.startSession(w, r, user.ID); err != nil {
		jsonError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	slog.Info("user registered", "user", user.ID, "email", user.Email)
	jsonResponse(w, http.StatusCreated, user)
}

// Login handles POST /api/users/login.
func (h *UsersHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, ok := h.checkCredentials(w, r, req)
	if !ok {
		return
	}

	if err := h.startSession(w, r, user.ID); err != nil {
		jsonError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	slog.Info("user logged in", "user", user.ID)
	jsonResponse(w, http.StatusOK, user)
}

// Token handles POST /api/users/token: exchanges credentials for a Bearer
// token for programmatic clients that don't keep cookies.
func (h *UsersHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, ok := h.checkCredentials(w, r, req)
	if !ok {
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, user.ID, user.Email)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"token": token})
}

// checkCredentials verifies an email/password pair, writing the 401
// itself when verification fails.
func (h *UsersHandler) checkCredentials(w http.ResponseWriter, r *http.Request, req credentialsRequest) (*model.User, bool) {
	if req.Email == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "Email and password required")
		return nil, false
	}

	user, err := h.Store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		slog.Error("looking up user", "error", err)
		jsonError(w, http.StatusInternalServerError, "Internal error")
		return nil, false
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		slog.Warn("login failed", "email", req.Email, "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "Invalid email or password")
		return nil, false
	}

	return user, true
}

func (h *UsersHandler) startSession(w http.ResponseWriter, r *http.Request, userID int64) error {
	token, err := h.Sessions.Create(r.Context(), userID)
	if err != nil {
		slog.Error("creating session", "error", err)
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(session.TTL.Seconds()),
	})
	return nil
}

// Logout handles POST /api/users/logout.
func (h *UsersHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(SessionCookie)
	if err == nil && cookie.Value != "" {
		if err := h.Sessions.Destroy(r.Context(), cookie.Value); err != nil {
			slog.Error("destroying session", "error", err)
			jsonError(w, http.StatusInternalServerError, "Failed to logout")
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	jsonResponse(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// Me handles GET /api/users/me.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.Store.GetUser(r.Context(), UserID(r.Context()))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	if user == nil {
		jsonError(w, http.StatusNotFound, "User not found")
		return
	}
	jsonResponse(w, http.StatusOK, user)
}
