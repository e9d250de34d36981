package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"fleetreserve/internal/db"
	errs "fleetreserve/internal/errors"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(database *sql.DB) *UserRepository {
	return &UserRepository{DB: database}
}

const userColumns = `
	u.id, u.intranet_id, u.first_name, u.last_name, u.email, u.phone_number,
	u.role_id, r.role_name, u.is_active, u.created_at, u.updated_at`

const userJoins = ` FROM users u JOIN roles r ON r.id = u.role_id`

func (r *UserRepository) GetByID(id int) (*db.AppUser, error) {
	query := `SELECT` + userColumns + userJoins + ` WHERE u.id = $1`
	u, err := scanUser(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrUserNotFound
		}
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByIntranetID(intranetID string) (*db.AppUser, error) {
	query := `SELECT` + userColumns + userJoins + ` WHERE u.intranet_id = $1`
	u, err := scanUser(r.DB.QueryRow(query, intranetID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrUserNotFound
		}
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) List() ([]db.AppUser, error) {
	query := `SELECT` + userColumns + userJoins + ` ORDER BY u.last_name, u.first_name`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var out []db.AppUser
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return out, nil
}

func (r *UserRepository) Create(u *db.AppUser) error {
	query := `
		INSERT INTO users (intranet_id, first_name, last_name, email, phone_number, role_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	err := r.DB.QueryRow(query,
		u.IntranetID, u.FirstName, u.LastName, u.Email, u.PhoneNumber, u.RoleID, u.IsActive,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateRole(userID, roleID int) error {
	res, err := r.DB.Exec(`UPDATE users SET role_id = $1, updated_at = NOW() WHERE id = $2`, roleID, userID)
	if err != nil {
		return fmt.Errorf("error updating user role: %w", err)
	}
	return requireAffected(res, errs.ErrUserNotFound)
}

func (r *UserRepository) UpdateStatus(userID int, isActive bool) error {
	res, err := r.DB.Exec(`UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2`, isActive, userID)
	if err != nil {
		return fmt.Errorf("error updating user status: %w", err)
	}
	return requireAffected(res, errs.ErrUserNotFound)
}

func (r *UserRepository) ListRoles() ([]db.Role, error) {
	rows, err := r.DB.Query(`SELECT id, role_name, description, created_at, updated_at FROM roles ORDER BY role_name`)
	if err != nil {
		return nil, fmt.Errorf("error listing roles: %w", err)
	}
	defer rows.Close()

	var out []db.Role
	for rows.Next() {
		var role db.Role
		if err := rows.Scan(&role.ID, &role.RoleName, &role.Description, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning role: %w", err)
		}
		out = append(out, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roles: %w", err)
	}
	return out, nil
}

func (r *UserRepository) GetRoleByID(id int) (*db.Role, error) {
	var role db.Role
	err := r.DB.QueryRow(
		`SELECT id, role_name, description, created_at, updated_at FROM roles WHERE id = $1`, id,
	).Scan(&role.ID, &role.RoleName, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrRoleNotFound
		}
		return nil, fmt.Errorf("error querying role: %w", err)
	}
	return &role, nil
}

func (r *UserRepository) GetRoleByName(name string) (*db.Role, error) {
	var role db.Role
	err := r.DB.QueryRow(
		`SELECT id, role_name, description, created_at, updated_at FROM roles WHERE role_name = $1`, name,
	).Scan(&role.ID, &role.RoleName, &role.Description, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrRoleNotFound
		}
		return nil, fmt.Errorf("error querying role: %w", err)
	}
	return &role, nil
}

func (r *UserRepository) CreateRole(role *db.Role) error {
	err := r.DB.QueryRow(
		`INSERT INTO roles (role_name, description) VALUES ($1, $2) RETURNING id, created_at, updated_at`,
		role.RoleName, role.Description,
	).Scan(&role.ID, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating role: %w", err)
	}
	return nil
}

func scanUser(row rowScanner) (*db.AppUser, error) {
	var u db.AppUser
	err := row.Scan(
		&u.ID, &u.IntranetID, &u.FirstName, &u.LastName, &u.Email, &u.PhoneNumber,
		&u.RoleID, &u.RoleName, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func requireAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
