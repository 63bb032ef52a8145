package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/mreiter/accountd/internal/logging"
	"github.com/mreiter/accountd/internal/models"
	"github.com/mreiter/accountd/internal/services"
)

// UserHandler serves the CRUD routes for the user resource.
type UserHandler struct {
	users       services.UserServiceInterface
	authService services.AuthServiceInterface
}

func NewUserHandler(users services.UserServiceInterface, authService services.AuthServiceInterface) *UserHandler {
	return &UserHandler{
		users:       users,
		authService: authService,
	}
}

type DeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		logging.Error("Error listing users", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		logging.Error("Error getting user", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Create registers a user through the same path as POST /register, so
// the password is hashed no matter which entry point made the account.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	msg, ok := decodeUserMessage(w, r)
	if !ok {
		return
	}

	user, err := h.authService.Register(r.Context(), msg)
	if errors.Is(err, services.ErrEmailAlreadyExists) {
		writeError(w, http.StatusConflict, "Email already registered")
		return
	}
	if err != nil {
		logging.Error("Error creating user", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Update replaces email, name and password as one changeset. The
// incoming plaintext is hashed before the row is written.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	msg, ok := decodeUserMessage(w, r)
	if !ok {
		return
	}

	hash, err := h.authService.HashPassword(msg.Password)
	if err != nil {
		logging.Error("Error hashing password", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user, err := h.users.Update(r.Context(), id, models.CreateUserParams{
		Email:        msg.Email,
		Name:         msg.Name,
		PasswordHash: hash,
	})
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		logging.Error("Error updating user", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	deleted, err := h.users.Delete(r.Context(), id)
	if err != nil {
		logging.Error("Error deleting user", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: deleted})
}

func parseIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id")
		return uuid.Nil, false
	}
	return id, true
}

// decodeUserMessage validates the shape shared by create and update:
// a parseable email and a non-empty password. Name may be empty.
func decodeUserMessage(w http.ResponseWriter, r *http.Request) (models.UserMessage, bool) {
	var msg models.UserMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return msg, false
	}

	msg.Email = normalizeEmail(msg.Email)
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid email address")
		return msg, false
	}

	if msg.Password == "" {
		writeError(w, http.StatusBadRequest, "Password is required")
		return msg, false
	}

	return msg, true
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
