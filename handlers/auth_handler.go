package handlers

import (
	"explorerhub/middleware"
	"explorerhub/models"
	"explorerhub/services"
	"explorerhub/utils/errors"
	"net/http"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input models.SignupForm
	if !decodeJSON(w, r, &input) {
		return
	}
	resp, err := h.authService.Signup(r.Context(), input)
	respond(w, resp, err)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input models.LoginForm
	if !decodeJSON(w, r, &input) {
		return
	}
	resp, err := h.authService.Login(r.Context(), input)
	respond(w, resp, err)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.CurrentUser(r.Context(), middleware.TokenFromContext(r.Context()))
	if err != nil {
		respond(w, nil, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateMe applies a profile edit to the signed-in user.
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var input models.ProfileForm
	if !decodeJSON(w, r, &input) {
		return
	}
	user, err := h.authService.UpdateProfile(r.Context(), middleware.TokenFromContext(r.Context()), input)
	if err != nil {
		respond(w, nil, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.BearerToken(r)
	if !ok {
		middleware.WriteError(w, errors.ErrUnauthorized)
		return
	}
	if err := h.authService.Logout(r.Context(), token); err != nil {
		middleware.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
