package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/golinks/golinks-be/internal/auth"
	"github.com/golinks/golinks-be/internal/models"
	"github.com/golinks/golinks-be/internal/services"
	"github.com/rs/zerolog/log"
)

// UserHandler handles HTTP requests for accounts and sessions.
type UserHandler struct {
	service services.UserServiceProvider
	tokens  *auth.Manager
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, tokens *auth.Manager) *UserHandler {
	return &UserHandler{service: service, tokens: tokens}
}

// SignupPayload defines the structure for registration requests.
type SignupPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles new user registration and issues the first token.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload SignupPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.RegisterUser(payload.Name, payload.Email, payload.Password)
	switch {
	case errors.Is(err, services.ErrMissingFields):
		respondError(w, http.StatusBadRequest, "Name, email, and password are required")
		return
	case errors.Is(err, services.ErrEmailTaken):
		respondError(w, http.StatusBadRequest, "Email already registered")
		return
	case err != nil:
		log.Error().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		respondError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate token")
		respondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"token":   token,
		"user":    user,
	})
}

// Login handles user authentication and token generation.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.Email == "" || payload.Password == "" {
		respondError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.service.AuthenticateUser(payload.Email, payload.Password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			log.Error().Err(err).Msg("Login failed on storage error")
			respondError(w, http.StatusInternalServerError, "Failed to log in")
			return
		}
		log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate token")
		respondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// GetAll handles retrieving every registered user.
func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetAllUsers()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve users")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	respondJSON(w, http.StatusOK, users)
}

// Profile returns the currently authenticated user.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user from request context")
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}
	respondJSON(w, http.StatusOK, user)
}
