package service

import (
	"errors"
	"fmt"
	"time"

	"fleetreserve/internal/auth"
	"fleetreserve/internal/db"
	errs "fleetreserve/internal/errors"
)

// AuthService implements the mock SSO login. A real deployment would
// resolve the intranet id against LDAP/Active Directory; here an unknown
// id provisions a demo user record instead.
type AuthService struct {
	users     UserStore
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(users UserStore, jwtSecret string, jwtTTL time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret, jwtTTL: jwtTTL}
}

// Login finds or provisions the user for an intranet id and issues an
// access token. The literal id "admin" provisions a Fleet Administrator;
// everything else an Employee.
func (s *AuthService) Login(intranetID string) (*db.AppUser, string, error) {
	if intranetID == "" {
		return nil, "", fmt.Errorf("%w: intranet_id is required", errs.ErrValidation)
	}

	user, err := s.users.GetByIntranetID(intranetID)
	if errors.Is(err, errs.ErrUserNotFound) {
		user, err = s.provision(intranetID)
	}
	if err != nil {
		return nil, "", err
	}
	if !user.IsActive {
		return nil, "", errs.ErrUnauthorized
	}

	token, err := auth.GenerateToken(s.jwtSecret, s.jwtTTL, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("error signing token: %w", err)
	}
	return user, token, nil
}

func (s *AuthService) Me(callerID int) (*db.AppUser, error) {
	return s.users.GetByID(callerID)
}

func (s *AuthService) provision(intranetID string) (*db.AppUser, error) {
	roleName := db.RoleEmployee
	firstName, lastName := "New", "Employee"
	email := intranetID + "@company.com"
	if intranetID == "admin" {
		roleName = db.RoleFleetAdmin
		firstName, lastName = "Admin", "User"
		email = "admin@company.com"
	}

	role, err := s.ensureRole(roleName)
	if err != nil {
		return nil, err
	}

	user := &db.AppUser{
		IntranetID: intranetID,
		FirstName:  firstName,
		LastName:   lastName,
		Email:      email,
		RoleID:     role.ID,
		RoleName:   role.RoleName,
		IsActive:   true,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ensureRole(name string) (*db.Role, error) {
	role, err := s.users.GetRoleByName(name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, errs.ErrRoleNotFound) {
		return nil, err
	}

	description := "Standard employee with basic reservation permissions"
	if name == db.RoleFleetAdmin {
		description = "Administrator with full fleet management access"
	}
	role = &db.Role{RoleName: name, Description: &description}
	if err := s.users.CreateRole(role); err != nil {
		return nil, err
	}
	return role, nil
}
