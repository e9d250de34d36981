package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"fleetreserve/internal/auth"
	"fleetreserve/internal/entities"
	errs "fleetreserve/internal/errors"
	"fleetreserve/internal/service"
)

type AuthHandler struct {
	Service *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

// Login exchanges an intranet id for an access token, provisioning a
// user record on first sight of the id.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", errs.ErrValidation))
		return
	}

	user, token, err := h.Service.Login(req.IntranetID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.LoginResponse{
		AccessToken: token,
		User:        entities.NewUserResponse(user),
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())

	user, err := h.Service.Me(caller.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewUserResponse(user))
}

// Logout is stateless on the server side; the client discards its token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "Logged out successfully")
}
