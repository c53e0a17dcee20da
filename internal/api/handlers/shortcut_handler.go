package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/golinks/golinks-be/internal/auth"
	"github.com/golinks/golinks-be/internal/models"
	"github.com/golinks/golinks-be/internal/services"
	"github.com/rs/zerolog/log"
)

// ShortcutHandler handles HTTP requests for the caller's shortcut directory.
// Every route it serves sits behind auth.RequireAuth.
type ShortcutHandler struct {
	service services.ShortcutServiceProvider
}

// NewShortcutHandler creates a new ShortcutHandler.
func NewShortcutHandler(service services.ShortcutServiceProvider) *ShortcutHandler {
	return &ShortcutHandler{service: service}
}

// CreateShortcutPayload defines the structure for shortcut creation requests.
type CreateShortcutPayload struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// GetAll handles the request to list the caller's shortcuts, newest first.
func (h *ShortcutHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	shortcuts, err := h.service.GetShortcutsForUser(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to retrieve shortcuts")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve shortcuts")
		return
	}
	if shortcuts == nil {
		shortcuts = []models.Shortcut{}
	}
	respondJSON(w, http.StatusOK, shortcuts)
}

// Create handles the request to add a shortcut to the caller's directory.
func (h *ShortcutHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	var payload CreateShortcutPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	shortcut, err := h.service.CreateShortcut(user.ID, payload.Name, payload.URL, payload.Description, payload.Category)
	switch {
	case errors.Is(err, services.ErrMissingFields):
		respondError(w, http.StatusBadRequest, "Name and URL are required")
		return
	case errors.Is(err, services.ErrShortcutNameTaken):
		respondError(w, http.StatusBadRequest, "Shortcut name already exists")
		return
	case err != nil:
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to create shortcut")
		respondError(w, http.StatusInternalServerError, "Failed to create shortcut")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Shortcut created successfully",
		"shortcut": shortcut,
	})
}

// Update handles a partial update of one of the caller's shortcuts.
func (h *ShortcutHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	id := chi.URLParam(r, "id")
	var patch models.ShortcutPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	shortcut, err := h.service.UpdateShortcut(user.ID, id, patch)
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondError(w, http.StatusNotFound, "Shortcut not found")
		return
	case errors.Is(err, services.ErrShortcutNameTaken):
		respondError(w, http.StatusBadRequest, "Shortcut name already exists")
		return
	case err != nil:
		log.Error().Err(err).Str("shortcut_id", id).Msg("Failed to update shortcut")
		respondError(w, http.StatusInternalServerError, "Failed to update shortcut")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Shortcut updated successfully",
		"shortcut": shortcut,
	})
}

// Delete handles the removal of one of the caller's shortcuts.
func (h *ShortcutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	id := chi.URLParam(r, "id")
	err := h.service.DeleteShortcut(user.ID, id)
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondError(w, http.StatusNotFound, "Shortcut not found")
		return
	case err != nil:
		log.Error().Err(err).Str("shortcut_id", id).Msg("Failed to delete shortcut")
		respondError(w, http.StatusInternalServerError, "Failed to delete shortcut")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Shortcut deleted successfully"})
}

// Search resolves a keyword in the caller's directory, bumping its usage
// stats on a hit. A miss is a normal 200 with found=false.
func (h *ShortcutHandler) Search(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusInternalServerError, "Could not retrieve user from token")
		return
	}

	query := chi.URLParam(r, "query")
	shortcut, found, err := h.service.LookupShortcut(user.ID, query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("Failed to search shortcuts")
		respondError(w, http.StatusInternalServerError, "Failed to search shortcuts")
		return
	}

	if !found {
		respondJSON(w, http.StatusOK, map[string]interface{}{"found": false})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"found":    true,
		"shortcut": shortcut,
	})
}
