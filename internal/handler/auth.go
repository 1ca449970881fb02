package handler

import (
	"net/http"

	"github.com/moodlens/emotion-service/internal/middleware"
	"github.com/moodlens/emotion-service/internal/models"
	"github.com/moodlens/emotion-service/internal/token"
)

// Register handles user registration. Credentials arrive as form fields,
// matching the login flow browsers submit.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "username and password are required"})
		return
	}

	if _, err := h.svc.Register(r.Context(), username, password); err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User registered successfully"})
}

// Login handles user authentication and returns a bearer token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	tokenString, err := h.svc.Login(r.Context(), username, password)
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.TokenResponse{
		AccessToken: tokenString,
		TokenType:   "bearer",
	})
}

// Me returns the authenticated user's profile
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		h.respondError(w, token.ErrInvalidToken)
		return
	}

	user, err := h.svc.UserInfo(r.Context(), username)
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"username": user.Username,
		"email":    user.Email,
	})
}
