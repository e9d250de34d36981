package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"fleetreserve/internal/db"
	errs "fleetreserve/internal/errors"
)

// RecordRepository stores vehicle maintenance history: service records
// and damage records.
type RecordRepository struct {
	DB *sql.DB
}

func NewRecordRepository(database *sql.DB) *RecordRepository {
	return &RecordRepository{DB: database}
}

const serviceRecordColumns = `
	s.id, s.vehicle_id, s.service_date, s.service_type, s.description,
	s.cost, s.performed_by, s.created_at, s.updated_at,
	v.make, v.model, v.license_plate`

func (r *RecordRepository) GetServiceRecord(id int) (*db.ServiceRecord, error) {
	query := `SELECT` + serviceRecordColumns + ` FROM service_records s JOIN vehicles v ON v.id = s.vehicle_id WHERE s.id = $1`
	rec, err := scanServiceRecord(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrServiceRecordNotFound
		}
		return nil, fmt.Errorf("error querying service record: %w", err)
	}
	return rec, nil
}

// ListServiceRecords returns records newest-first, optionally filtered to
// one vehicle (0 = all).
func (r *RecordRepository) ListServiceRecords(vehicleID int) ([]db.ServiceRecord, error) {
	query := `SELECT` + serviceRecordColumns + ` FROM service_records s JOIN vehicles v ON v.id = s.vehicle_id`
	args := []interface{}{}
	if vehicleID != 0 {
		query += " WHERE s.vehicle_id = $1"
		args = append(args, vehicleID)
	}
	query += " ORDER BY s.service_date DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing service records: %w", err)
	}
	defer rows.Close()

	var out []db.ServiceRecord
	for rows.Next() {
		rec, err := scanServiceRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning service record: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating service records: %w", err)
	}
	return out, nil
}

func (r *RecordRepository) CreateServiceRecord(rec *db.ServiceRecord) error {
	query := `
		INSERT INTO service_records (vehicle_id, service_date, service_type, description, cost, performed_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		rec.VehicleID, rec.ServiceDate, rec.ServiceType, rec.Description, rec.Cost, rec.PerformedBy,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
}

func (r *RecordRepository) UpdateServiceRecord(rec *db.ServiceRecord) error {
	query := `
		UPDATE service_records
		SET service_date = $1, service_type = $2, description = $3, cost = $4, performed_by = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at`
	err := r.DB.QueryRow(query,
		rec.ServiceDate, rec.ServiceType, rec.Description, rec.Cost, rec.PerformedBy, rec.ID,
	).Scan(&rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return errs.ErrServiceRecordNotFound
	}
	return err
}

func (r *RecordRepository) DeleteServiceRecord(id int) error {
	res, err := r.DB.Exec(`DELETE FROM service_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting service record: %w", err)
	}
	return requireAffected(res, errs.ErrServiceRecordNotFound)
}

const damageRecordColumns = `
	d.id, d.vehicle_id, d.date_of_damage, d.description, d.estimated_cost,
	d.actual_cost, d.repair_status, d.photos, d.created_at, d.updated_at,
	v.make, v.model, v.license_plate`

func (r *RecordRepository) GetDamageRecord(id int) (*db.DamageRecord, error) {
	query := `SELECT` + damageRecordColumns + ` FROM damage_records d JOIN vehicles v ON v.id = d.vehicle_id WHERE d.id = $1`
	rec, err := scanDamageRecord(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrDamageRecordNotFound
		}
		return nil, fmt.Errorf("error querying damage record: %w", err)
	}
	return rec, nil
}

func (r *RecordRepository) ListDamageRecords(vehicleID int) ([]db.DamageRecord, error) {
	query := `SELECT` + damageRecordColumns + ` FROM damage_records d JOIN vehicles v ON v.id = d.vehicle_id`
	args := []interface{}{}
	if vehicleID != 0 {
		query += " WHERE d.vehicle_id = $1"
		args = append(args, vehicleID)
	}
	query += " ORDER BY d.date_of_damage DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing damage records: %w", err)
	}
	defer rows.Close()

	var out []db.DamageRecord
	for rows.Next() {
		rec, err := scanDamageRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning damage record: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating damage records: %w", err)
	}
	return out, nil
}

func (r *RecordRepository) CreateDamageRecord(rec *db.DamageRecord) error {
	query := `
		INSERT INTO damage_records (vehicle_id, date_of_damage, description, estimated_cost, actual_cost, repair_status, photos)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRow(query,
		rec.VehicleID, rec.DateOfDamage, rec.Description, rec.EstimatedCost,
		rec.ActualCost, rec.RepairStatus, pq.Array([]string(rec.Photos)),
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
}

func (r *RecordRepository) UpdateDamageRecord(rec *db.DamageRecord) error {
	query := `
		UPDATE damage_records
		SET date_of_damage = $1, description = $2, estimated_cost = $3, actual_cost = $4,
		    repair_status = $5, photos = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at`
	err := r.DB.QueryRow(query,
		rec.DateOfDamage, rec.Description, rec.EstimatedCost, rec.ActualCost,
		rec.RepairStatus, pq.Array([]string(rec.Photos)), rec.ID,
	).Scan(&rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return errs.ErrDamageRecordNotFound
	}
	return err
}

func (r *RecordRepository) DeleteDamageRecord(id int) error {
	res, err := r.DB.Exec(`DELETE FROM damage_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting damage record: %w", err)
	}
	return requireAffected(res, errs.ErrDamageRecordNotFound)
}

func scanServiceRecord(row rowScanner) (*db.ServiceRecord, error) {
	var rec db.ServiceRecord
	err := row.Scan(
		&rec.ID, &rec.VehicleID, &rec.ServiceDate, &rec.ServiceType, &rec.Description,
		&rec.Cost, &rec.PerformedBy, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.VehicleMake, &rec.VehicleModel, &rec.VehiclePlate,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func scanDamageRecord(row rowScanner) (*db.DamageRecord, error) {
	var rec db.DamageRecord
	err := row.Scan(
		&rec.ID, &rec.VehicleID, &rec.DateOfDamage, &rec.Description, &rec.EstimatedCost,
		&rec.ActualCost, &rec.RepairStatus, &rec.Photos, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.VehicleMake, &rec.VehicleModel, &rec.VehiclePlate,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
