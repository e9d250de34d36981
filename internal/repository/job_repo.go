package repository

import (
	"database/sql"
	"fmt"
	"time"

	"fleetreserve/internal/db"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// ListVehiclesWithExpiringInspections returns Active vehicles whose
// technical inspection, emission inspection or highway vignette lapses on
// or before the cutoff.
func (r *JobRepository) ListVehiclesWithExpiringInspections(cutoff time.Time) ([]db.Vehicle, error) {
	query := `SELECT` + vehicleColumns + `
	FROM vehicles
	WHERE status = $1
	  AND (technical_inspection_expiry_date <= $2
	    OR emission_inspection_expiry_date <= $2
	    OR highway_vignette_expiry_date <= $2)
	ORDER BY license_plate`

	rows, err := r.DB.Query(query, db.VehicleStatusActive, cutoff)
	if err != nil {
		return nil, fmt.Errorf("error querying expiring inspections: %w", err)
	}
	defer rows.Close()

	var out []db.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning vehicle: %w", err)
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vehicles: %w", err)
	}
	return out, nil
}

// ListAdminEmails returns the email addresses of active fleet administrators.
func (r *JobRepository) ListAdminEmails() ([]string, error) {
	rows, err := r.DB.Query(`
		SELECT u.email
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE r.role_name = $1 AND u.is_active`, db.RoleFleetAdmin)
	if err != nil {
		return nil, fmt.Errorf("error querying admin emails: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("error scanning email: %w", err)
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating admin emails: %w", err)
	}
	return emails, nil
}
