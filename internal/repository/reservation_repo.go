package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lib/pq"

	"fleetreserve/internal/db"
	errs "fleetreserve/internal/errors"
)

type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(database *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: database}
}

// ReservationFilter narrows List. Nil/zero fields are ignored.
type ReservationFilter struct {
	UserID    *int
	VehicleID *int
	Status    string
	StartDate *time.Time // start_time >= StartDate
	EndDate   *time.Time // end_time <= EndDate
}

const reservationColumns = `
	r.id, r.vehicle_id, r.user_id, r.start_time, r.end_time,
	r.purpose, r.destination, r.number_of_passengers, r.status,
	r.user_notes, r.admin_notes, r.created_at, r.updated_at,
	v.make, v.model, v.license_plate,
	u.first_name, u.last_name, u.email, u.phone_number`

const reservationJoins = `
	FROM reservations r
	JOIN vehicles v ON v.id = r.vehicle_id
	JOIN users u ON u.id = r.user_id`

const overlapQuery = `
	SELECT EXISTS (
		SELECT 1 FROM reservations
		WHERE vehicle_id = $1
		  AND status = 'Confirmed'
		  AND start_time < $3
		  AND end_time > $2
		  AND id <> $4
	)`

// HasOverlap reports whether any Confirmed reservation on the vehicle
// intersects the half-open window [start, end). excludeID = 0 excludes
// nothing.
func (r *ReservationRepository) HasOverlap(vehicleID int, start, end time.Time, excludeID int) (bool, error) {
	var overlap bool
	err := r.DB.QueryRow(overlapQuery, vehicleID, start, end, excludeID).Scan(&overlap)
	if err != nil {
		return false, fmt.Errorf("error checking overlap: %w", err)
	}
	return overlap, nil
}

// Create inserts a new reservation. The overlap check and the insert run
// in one serializable transaction; the schema's exclusion constraint on
// (vehicle_id, tstzrange) backs it up, so a concurrent writer surfaces as
// ErrConflict instead of a double booking.
func (r *ReservationRepository) Create(res *db.Reservation) error {
	ctx := context.Background()
	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	var overlap bool
	if err := tx.QueryRow(overlapQuery, res.VehicleID, res.StartTime, res.EndTime, 0).Scan(&overlap); err != nil {
		return fmt.Errorf("error checking overlap: %w", err)
	}
	if overlap {
		return errs.ErrConflict
	}

	query := `
		INSERT INTO reservations
		(vehicle_id, user_id, start_time, end_time, purpose, destination, number_of_passengers, status, user_notes, admin_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`
	err = tx.QueryRow(query,
		res.VehicleID,
		res.UserID,
		res.StartTime,
		res.EndTime,
		res.Purpose,
		res.Destination,
		res.NumberOfPassengers,
		res.Status,
		res.UserNotes,
		res.AdminNotes,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return mapConstraintError(err)
	}

	if err := tx.Commit(); err != nil {
		return mapConstraintError(err)
	}
	return nil
}

// Update writes all mutable fields in place. When the reservation stays
// Confirmed, the new window is re-checked against other Confirmed
// reservations inside the same transaction.
func (r *ReservationRepository) Update(res *db.Reservation) error {
	ctx := context.Background()
	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if res.Status == db.ReservationStatusConfirmed {
		var overlap bool
		if err := tx.QueryRow(overlapQuery, res.VehicleID, res.StartTime, res.EndTime, res.ID).Scan(&overlap); err != nil {
			return fmt.Errorf("error checking overlap: %w", err)
		}
		if overlap {
			return errs.ErrConflict
		}
	}

	query := `
		UPDATE reservations
		SET start_time = $1, end_time = $2, purpose = $3, destination = $4,
		    number_of_passengers = $5, status = $6, user_notes = $7, admin_notes = $8,
		    updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at`
	err = tx.QueryRow(query,
		res.StartTime,
		res.EndTime,
		res.Purpose,
		res.Destination,
		res.NumberOfPassengers,
		res.Status,
		res.UserNotes,
		res.AdminNotes,
		res.ID,
	).Scan(&res.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.ErrReservationNotFound
		}
		return mapConstraintError(err)
	}

	if err := tx.Commit(); err != nil {
		return mapConstraintError(err)
	}
	return nil
}

// SetStatus transitions a reservation's status without touching any other
// field. Used for cancellation.
func (r *ReservationRepository) SetStatus(id int, status string) error {
	res, err := r.DB.Exec(`UPDATE reservations SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating reservation status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.ErrReservationNotFound
	}
	return nil
}

func (r *ReservationRepository) GetByID(id int) (*db.Reservation, error) {
	query := `SELECT` + reservationColumns + reservationJoins + ` WHERE r.id = $1`
	res, err := scanReservation(r.DB.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrReservationNotFound
		}
		return nil, fmt.Errorf("error querying reservation: %w", err)
	}
	return res, nil
}

func (r *ReservationRepository) List(f ReservationFilter) ([]db.Reservation, error) {
	query := `SELECT` + reservationColumns + reservationJoins + ` WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if f.UserID != nil {
		query += " AND r.user_id = $" + strconv.Itoa(idx)
		args = append(args, *f.UserID)
		idx++
	}
	if f.VehicleID != nil {
		query += " AND r.vehicle_id = $" + strconv.Itoa(idx)
		args = append(args, *f.VehicleID)
		idx++
	}
	if f.Status != "" {
		query += " AND r.status = $" + strconv.Itoa(idx)
		args = append(args, f.Status)
		idx++
	}
	if f.StartDate != nil {
		query += " AND r.start_time >= $" + strconv.Itoa(idx)
		args = append(args, *f.StartDate)
		idx++
	}
	if f.EndDate != nil {
		query += " AND r.end_time <= $" + strconv.Itoa(idx)
		args = append(args, *f.EndDate)
		idx++
	}
	query += " ORDER BY r.start_time DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing reservations: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

// ListCalendar returns Confirmed reservations intersecting the inclusive
// range [start, end], optionally scoped to one vehicle (0 = all).
func (r *ReservationRepository) ListCalendar(start, end time.Time, vehicleID int) ([]db.Reservation, error) {
	query := `SELECT` + reservationColumns + reservationJoins + `
	WHERE r.status = 'Confirmed'
	  AND r.start_time <= $2
	  AND r.end_time >= $1`
	args := []interface{}{start, end}
	if vehicleID != 0 {
		query += " AND r.vehicle_id = $3"
		args = append(args, vehicleID)
	}
	query += " ORDER BY r.start_time"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying calendar reservations: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*db.Reservation, error) {
	var res db.Reservation
	err := row.Scan(
		&res.ID, &res.VehicleID, &res.UserID, &res.StartTime, &res.EndTime,
		&res.Purpose, &res.Destination, &res.NumberOfPassengers, &res.Status,
		&res.UserNotes, &res.AdminNotes, &res.CreatedAt, &res.UpdatedAt,
		&res.VehicleMake, &res.VehicleModel, &res.VehiclePlate,
		&res.UserFirstName, &res.UserLastName, &res.UserEmail, &res.UserPhone,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]db.Reservation, error) {
	var out []db.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning reservation: %w", err)
		}
		out = append(out, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reservations: %w", err)
	}
	return out, nil
}

// mapConstraintError turns Postgres exclusion/unique violations and
// serialization failures into ErrConflict so concurrent double bookings
// surface as a retryable conflict, not a 500.
func mapConstraintError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23P01", "23505", "40001":
			return errs.ErrConflict
		}
	}
	return err
}
