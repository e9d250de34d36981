package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"fleetreserve/internal/db"
	errs "fleetreserve/internal/errors"
)

type VehicleRepository struct {
	DB *sql.DB
}

func NewVehicleRepository(database *sql.DB) *VehicleRepository {
	return &VehicleRepository{DB: database}
}

const vehicleColumns = `
	id, make, model, license_plate, color, fuel_type, seating_capacity,
	transmission_type, status, description, odometer_reading,
	last_service_date, next_service_date, technical_inspection_expiry_date,
	highway_vignette_expiry_date, emission_inspection_expiry_date,
	entry_permissions_notes, created_at, updated_at`

func (r *VehicleRepository) GetByID(id int) (*db.Vehicle, error) {
	query := `SELECT` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	v, err := scanVehicle(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("error querying vehicle: %w", err)
	}
	return v, nil
}

// List returns vehicles filtered by status; empty status means all.
func (r *VehicleRepository) List(status string) ([]db.Vehicle, error) {
	query := `SELECT` + vehicleColumns + ` FROM vehicles`
	args := []interface{}{}
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY make, model"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing vehicles: %w", err)
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

func (r *VehicleRepository) PlateExists(plate string, excludeID int) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM vehicles WHERE license_plate = $1 AND id <> $2)`,
		plate, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking license plate: %w", err)
	}
	return exists, nil
}

func (r *VehicleRepository) Create(v *db.Vehicle) error {
	query := `
		INSERT INTO vehicles
		(make, model, license_plate, color, fuel_type, seating_capacity, transmission_type,
		 status, description, odometer_reading, last_service_date, next_service_date,
		 technical_inspection_expiry_date, highway_vignette_expiry_date,
		 emission_inspection_expiry_date, entry_permissions_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		v.Make, v.Model, v.LicensePlate, v.Color, v.FuelType, v.SeatingCapacity,
		v.TransmissionType, v.Status, v.Description, v.OdometerReading,
		v.LastServiceDate, v.NextServiceDate, v.TechnicalInspectionExpiryDate,
		v.HighwayVignetteExpiryDate, v.EmissionInspectionExpiryDate,
		v.EntryPermissionsNotes,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
}

func (r *VehicleRepository) Update(v *db.Vehicle) error {
	query := `
		UPDATE vehicles
		SET make = $1, model = $2, license_plate = $3, color = $4, fuel_type = $5,
		    seating_capacity = $6, transmission_type = $7, status = $8, description = $9,
		    odometer_reading = $10, last_service_date = $11, next_service_date = $12,
		    technical_inspection_expiry_date = $13, highway_vignette_expiry_date = $14,
		    emission_inspection_expiry_date = $15, entry_permissions_notes = $16,
		    updated_at = NOW()
		WHERE id = $17
		RETURNING updated_at`
	err := r.DB.QueryRow(query,
		v.Make, v.Model, v.LicensePlate, v.Color, v.FuelType, v.SeatingCapacity,
		v.TransmissionType, v.Status, v.Description, v.OdometerReading,
		v.LastServiceDate, v.NextServiceDate, v.TechnicalInspectionExpiryDate,
		v.HighwayVignetteExpiryDate, v.EmissionInspectionExpiryDate,
		v.EntryPermissionsNotes, v.ID,
	).Scan(&v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return errs.ErrVehicleNotFound
	}
	return err
}

// Archive marks a vehicle Archived. Vehicles are never deleted.
func (r *VehicleRepository) Archive(id int) error {
	res, err := r.DB.Exec(
		`UPDATE vehicles SET status = $1, updated_at = NOW() WHERE id = $2`,
		db.VehicleStatusArchived, id,
	)
	if err != nil {
		return fmt.Errorf("error archiving vehicle: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrVehicleNotFound
	}
	return nil
}

func scanVehicle(row rowScanner) (*db.Vehicle, error) {
	var v db.Vehicle
	err := row.Scan(
		&v.ID, &v.Make, &v.Model, &v.LicensePlate, &v.Color, &v.FuelType,
		&v.SeatingCapacity, &v.TransmissionType, &v.Status, &v.Description,
		&v.OdometerReading, &v.LastServiceDate, &v.NextServiceDate,
		&v.TechnicalInspectionExpiryDate, &v.HighwayVignetteExpiryDate,
		&v.EmissionInspectionExpiryDate, &v.EntryPermissionsNotes,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
