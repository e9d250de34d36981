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

type UserHandler struct {
	Service *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{Service: svc}
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())

	users, err := h.Service.List(caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewUserResponses(users))
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.Service.Get(caller, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewUserResponse(user))
}

func (h *UserHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req UpdateUserRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", errs.ErrValidation))
		return
	}
	if req.RoleID == nil {
		writeError(w, fmt.Errorf("%w: role_id is required", errs.ErrValidation))
		return
	}

	user, err := h.Service.UpdateRole(caller, id, *req.RoleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewUserResponse(user))
}

func (h *UserHandler) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req UpdateUserStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", errs.ErrValidation))
		return
	}
	if req.IsActive == nil {
		writeError(w, fmt.Errorf("%w: is_active is required", errs.ErrValidation))
		return
	}

	user, err := h.Service.UpdateStatus(caller, id, *req.IsActive)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewUserResponse(user))
}

func (h *UserHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Service.ListRoles()
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]entities.RoleResponse, 0, len(roles))
	for i := range roles {
		out = append(out, entities.NewRoleResponse(&roles[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *UserHandler) CreateRole(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())

	var req CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", errs.ErrValidation))
		return
	}
	if req.RoleName == "" {
		writeError(w, fmt.Errorf("%w: role_name is required", errs.ErrValidation))
		return
	}

	role, err := h.Service.CreateRole(caller, req.RoleName, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entities.NewRoleResponse(role))
}
