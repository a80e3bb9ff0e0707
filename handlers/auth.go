package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/Sathyasree11/Crowd-count-using-video-analytics/database"
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/models"
	"github.com/Sathyasree11/Crowd-count-using-video-analytics/repository"
)

type AuthHandler struct {
	Users repository.UserRepository
	Store sessions.Store
}

func NewAuthHandler(users repository.UserRepository, store sessions.Store) *AuthHandler {
	return &AuthHandler{Users: users, Store: store}
}

type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new account. The credential is stored exactly as
// submitted; see models.User.SetPassword.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Invalid request payload")
		return
	}
	if payload.Username == "" || payload.Password == "" {
		WriteAPIError(w, http.StatusBadRequest, "missing_fields", "Username and password are required")
		return
	}

	user := &models.User{Username: payload.Username}
	user.SetPassword(payload.Password)

	if err := h.Users.Create(user); err != nil {
		if errors.Is(err, database.ErrUnavailable) {
			WriteAPIError(w, http.StatusServiceUnavailable, "db_unavailable", "Database not configured")
			return
		}
		// the unique index on username is the only plausible failure here
		WriteAPIError(w, http.StatusConflict, "username_taken", "Username already exists")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Registration successful. Please login."})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_payload", "Invalid request payload")
		return
	}

	user, err := h.Users.GetByUsername(payload.Username)
	if err != nil {
		if errors.Is(err, database.ErrUnavailable) {
			WriteAPIError(w, http.StatusServiceUnavailable, "db_unavailable", "Database not configured")
			return
		}
		WriteAPIError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid username or password")
		return
	}
	if !user.CheckPassword(payload.Password) {
		WriteAPIError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid username or password")
		return
	}

	session, _ := h.Store.Get(r, SessionName)
	session.Values["user_id"] = user.ID
	session.Values["username"] = user.Username
	if err := session.Save(r, w); err != nil {
		log.Printf("Error saving session for user %s: %v", user.Username, err)
		WriteAPIError(w, http.StatusInternalServerError, "session_error", "Failed to establish session")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.Store.Get(r, SessionName)
	delete(session.Values, "user_id")
	delete(session.Values, "username")
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		log.Printf("Error clearing session: %v", err)
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// CurrentUser returns the logged-in account for the session cookie.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID := CurrentUserID(r)
	if userID == nil {
		WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}
	user, err := h.Users.GetByID(*userID)
	if err != nil {
		WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
