package service

import (
	"errors"
	"fmt"

	"fleetreserve/internal/auth"
	"fleetreserve/internal/db"
	errs "fleetreserve/internal/errors"
)

type UserStore interface {
	GetByID(id int) (*db.AppUser, error)
	GetByIntranetID(intranetID string) (*db.AppUser, error)
	List() ([]db.AppUser, error)
	Create(u *db.AppUser) error
	UpdateRole(userID, roleID int) error
	UpdateStatus(userID int, isActive bool) error
	ListRoles() ([]db.Role, error)
	GetRoleByID(id int) (*db.Role, error)
	GetRoleByName(name string) (*db.Role, error)
	CreateRole(role *db.Role) error
}

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(caller *db.AppUser) ([]db.AppUser, error) {
	if !auth.CanAdminister(caller) {
		return nil, errs.ErrAccessDenied
	}
	return s.users.List()
}

// Get returns a user profile to its owner or an administrator.
func (s *UserService) Get(caller *db.AppUser, id int) (*db.AppUser, error) {
	if !auth.CanAccess(caller, id) {
		return nil, errs.ErrAccessDenied
	}
	return s.users.GetByID(id)
}

func (s *UserService) UpdateRole(caller *db.AppUser, userID, roleID int) (*db.AppUser, error) {
	if !auth.CanAdminister(caller) {
		return nil, errs.ErrAccessDenied
	}
	if _, err := s.users.GetByID(userID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetRoleByID(roleID); err != nil {
		return nil, err
	}
	if err := s.users.UpdateRole(userID, roleID); err != nil {
		return nil, err
	}
	return s.users.GetByID(userID)
}

func (s *UserService) UpdateStatus(caller *db.AppUser, userID int, isActive bool) (*db.AppUser, error) {
	if !auth.CanAdminister(caller) {
		return nil, errs.ErrAccessDenied
	}
	if _, err := s.users.GetByID(userID); err != nil {
		return nil, err
	}
	if err := s.users.UpdateStatus(userID, isActive); err != nil {
		return nil, err
	}
	return s.users.GetByID(userID)
}

func (s *UserService) ListRoles() ([]db.Role, error) {
	return s.users.ListRoles()
}

func (s *UserService) CreateRole(caller *db.AppUser, name string, description *string) (*db.Role, error) {
	if !auth.CanAdminister(caller) {
		return nil, errs.ErrAccessDenied
	}
	_, err := s.users.GetRoleByName(name)
	if err == nil {
		return nil, fmt.Errorf("%w: role with this name already exists", errs.ErrValidation)
	}
	if !errors.Is(err, errs.ErrRoleNotFound) {
		return nil, err
	}
	role := &db.Role{RoleName: name, Description: description}
	if err := s.users.CreateRole(role); err != nil {
		return nil, err
	}
	return role, nil
}
