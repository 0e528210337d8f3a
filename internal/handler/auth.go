package handler

import (
	"log/slog"
	"net/http"

	"github.com/templui/goalflow/internal/ctxkeys"
	"github.com/templui/goalflow/internal/model"
	"github.com/templui/goalflow/internal/service"
)

type authHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *authHandler {
	return &authHandler{
		authService: authService,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, err, "Failed to register")
		return
	}

	user, err := h.authService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		fail(w, err, "Failed to register")
		return
	}

	if !h.startSession(w, user) {
		return
	}
	writeOK(w, http.StatusCreated, envelope{"userId": user.ID})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(w, err, "Failed to sign in")
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		fail(w, err, "Failed to sign in")
		return
	}

	if !h.startSession(w, user) {
		return
	}
	slog.Info("user signed in", "user_id", user.ID)
	writeOK(w, http.StatusOK, nil)
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	writeOK(w, http.StatusOK, nil)
}

// Me reports the signed-in user, or null.
func (h *authHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	if user == nil {
		writeOK(w, http.StatusOK, envelope{"user": nil})
		return
	}

	writeOK(w, http.StatusOK, envelope{"user": map[string]string{
		"name":  user.Name,
		"email": user.Email,
	}})
}

func (h *authHandler) startSession(w http.ResponseWriter, user *model.User) bool {
	token, expiry, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return false
	}

	h.authService.SetJWTCookie(w, token, expiry)
	return true
}
