package entities

import (
	"time"

	"fleetreserve/internal/db"
)

type UserResponse struct {
	UserID      int       `json:"user_id"`
	IntranetID  string    `json:"intranet_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber *string   `json:"phone_number"`
	RoleID      int       `json:"role_id"`
	RoleName    string    `json:"role_name"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewUserResponse(u *db.AppUser) UserResponse {
	return UserResponse{
		UserID:      u.ID,
		IntranetID:  u.IntranetID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		RoleID:      u.RoleID,
		RoleName:    u.RoleName,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func NewUserResponses(us []db.AppUser) []UserResponse {
	out := make([]UserResponse, 0, len(us))
	for i := range us {
		out = append(out, NewUserResponse(&us[i]))
	}
	return out
}

type RoleResponse struct {
	RoleID      int       `json:"role_id"`
	RoleName    string    `json:"role_name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewRoleResponse(r *db.Role) RoleResponse {
	return RoleResponse{
		RoleID:      r.ID,
		RoleName:    r.RoleName,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}
