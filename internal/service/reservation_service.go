package service

import (
	"fmt"
	"log"
	"time"

	"fleetreserve/internal/auth"
	"fleetreserve/internal/db"
	"fleetreserve/internal/entities"
	errs "fleetreserve/internal/errors"
	"fleetreserve/internal/repository"
)

type ReservationStore interface {
	Create(res *db.Reservation) error
	Update(res *db.Reservation) error
	SetStatus(id int, status string) error
	GetByID(id int) (*db.Reservation, error)
	List(f repository.ReservationFilter) ([]db.Reservation, error)
	ListCalendar(start, end time.Time, vehicleID int) ([]db.Reservation, error)
	HasOverlap(vehicleID int, start, end time.Time, excludeID int) (bool, error)
}

type VehicleGetter interface {
	GetByID(id int) (*db.Vehicle, error)
}

type UserGetter interface {
	GetByID(id int) (*db.AppUser, error)
}

type Notifier interface {
	ReservationCreated(res *db.Reservation)
	ReservationCancelled(res *db.Reservation)
}

type ReservationService struct {
	reservations ReservationStore
	vehicles     VehicleGetter
	users        UserGetter
	notifier     Notifier
	modWindow    time.Duration
}

func NewReservationService(reservations ReservationStore, vehicles VehicleGetter, users UserGetter, notifier Notifier, modWindow time.Duration) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		vehicles:     vehicles,
		users:        users,
		notifier:     notifier,
		modWindow:    modWindow,
	}
}

// CheckAvailability reports whether the vehicle can take a Confirmed
// reservation on [start, end). Non-Active vehicles are never available.
// excludeID lets a reservation being rescheduled ignore its own row.
func (s *ReservationService) CheckAvailability(vehicleID int, start, end time.Time, excludeID int) (bool, error) {
	vehicle, err := s.vehicles.GetByID(vehicleID)
	if err != nil {
		return false, err
	}
	if vehicle.Status != db.VehicleStatusActive {
		return false, nil
	}
	overlap, err := s.reservations.HasOverlap(vehicleID, start.UTC(), end.UTC(), excludeID)
	if err != nil {
		return false, err
	}
	return !overlap, nil
}

type CreateReservationInput struct {
	VehicleID          int
	StartTime          time.Time
	EndTime            time.Time
	Purpose            string
	Destination        string
	NumberOfPassengers *int
	UserNotes          *string
	AdminNotes         *string
	// TargetUserID lets administrators book on behalf of another user.
	// Ignored for everyone else.
	TargetUserID *int
}

// Create validates and persists a new Confirmed reservation. Checks run
// in order; the first failure wins.
func (s *ReservationService) Create(caller *db.AppUser, in CreateReservationInput) (*db.Reservation, error) {
	start := in.StartTime.UTC()
	end := in.EndTime.UTC()

	if !start.Before(end) {
		return nil, fmt.Errorf("%w: end time must be after start time", errs.ErrValidation)
	}
	if start.Before(time.Now().UTC()) {
		return nil, fmt.Errorf("%w: cannot create reservation in the past", errs.ErrValidation)
	}

	available, err := s.CheckAvailability(in.VehicleID, start, end, 0)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, errs.ErrConflict
	}

	targetUserID := caller.ID
	if auth.CanAdminister(caller) && in.TargetUserID != nil {
		if _, err := s.users.GetByID(*in.TargetUserID); err != nil {
			return nil, err
		}
		targetUserID = *in.TargetUserID
	}

	var adminNotes *string
	if auth.CanAdminister(caller) {
		adminNotes = in.AdminNotes
	}

	res := &db.Reservation{
		VehicleID:          in.VehicleID,
		UserID:             targetUserID,
		StartTime:          start,
		EndTime:            end,
		Purpose:            in.Purpose,
		Destination:        in.Destination,
		NumberOfPassengers: in.NumberOfPassengers,
		Status:             db.ReservationStatusConfirmed,
		UserNotes:          in.UserNotes,
		AdminNotes:         adminNotes,
	}
	if err := s.reservations.Create(res); err != nil {
		return nil, err
	}

	created, err := s.reservations.GetByID(res.ID)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		go s.notifier.ReservationCreated(created)
	}
	return created, nil
}

type UpdateReservationInput struct {
	StartTime          *time.Time
	EndTime            *time.Time
	Purpose            *string
	Destination        *string
	NumberOfPassengers *int
	UserNotes          *string
	AdminNotes         *string
	Status             *string
}

// Update applies a partial edit. The owner may edit only Confirmed
// reservations outside the modification window; administrators may edit
// anything at any time. Unset time fields default to the stored values
// before re-validation.
func (s *ReservationService) Update(caller *db.AppUser, id int, in UpdateReservationInput) (*db.Reservation, error) {
	res, err := s.reservations.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccess(caller, res.UserID) {
		return nil, errs.ErrAccessDenied
	}
	if !auth.CanAdminister(caller) && !s.canUserModify(res) {
		return nil, errs.ErrNotModifiable
	}

	if in.StartTime != nil || in.EndTime != nil {
		start, end := res.StartTime, res.EndTime
		if in.StartTime != nil {
			start = in.StartTime.UTC()
		}
		if in.EndTime != nil {
			end = in.EndTime.UTC()
		}
		if !start.Before(end) {
			return nil, fmt.Errorf("%w: end time must be after start time", errs.ErrValidation)
		}
		if start.Before(time.Now().UTC()) {
			return nil, fmt.Errorf("%w: cannot set reservation start time in the past", errs.ErrValidation)
		}

		available, err := s.CheckAvailability(res.VehicleID, start, end, res.ID)
		if err != nil {
			return nil, err
		}
		if !available {
			return nil, errs.ErrConflict
		}
		res.StartTime = start
		res.EndTime = end
	}

	if in.Purpose != nil {
		res.Purpose = *in.Purpose
	}
	if in.Destination != nil {
		res.Destination = *in.Destination
	}
	if in.NumberOfPassengers != nil {
		res.NumberOfPassengers = in.NumberOfPassengers
	}
	if in.UserNotes != nil {
		res.UserNotes = in.UserNotes
	}

	// admin_notes and status are administrator-only; for other callers
	// they are silently dropped.
	if auth.CanAdminister(caller) {
		if in.AdminNotes != nil {
			res.AdminNotes = in.AdminNotes
		}
		if in.Status != nil {
			if err := validateStatusChange(res.Status, *in.Status); err != nil {
				return nil, err
			}
			res.Status = *in.Status
		}
	}

	if err := s.reservations.Update(res); err != nil {
		return nil, err
	}
	return s.reservations.GetByID(id)
}

// Cancel transitions a reservation to Cancelled. The record is kept; it
// simply stops counting toward availability.
func (s *ReservationService) Cancel(caller *db.AppUser, id int) error {
	res, err := s.reservations.GetByID(id)
	if err != nil {
		return err
	}
	if !auth.CanAccess(caller, res.UserID) {
		return errs.ErrAccessDenied
	}
	if !auth.CanAdminister(caller) && !s.canUserModify(res) {
		return errs.ErrNotModifiable
	}
	if res.Status == db.ReservationStatusCancelled {
		// Already cancelled; nothing to do.
		return nil
	}

	if err := s.reservations.SetStatus(id, db.ReservationStatusCancelled); err != nil {
		return err
	}
	log.Printf("reservation %d cancelled by user %d", id, caller.ID)

	if s.notifier != nil {
		res.Status = db.ReservationStatusCancelled
		go s.notifier.ReservationCancelled(res)
	}
	return nil
}

// Get returns a single reservation to its owner or an administrator.
func (s *ReservationService) Get(caller *db.AppUser, id int) (*db.Reservation, error) {
	res, err := s.reservations.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccess(caller, res.UserID) {
		return nil, errs.ErrAccessDenied
	}
	return res, nil
}

// List returns reservations matching the filter. Non-administrators only
// ever see their own.
func (s *ReservationService) List(caller *db.AppUser, f repository.ReservationFilter) ([]db.Reservation, error) {
	if !auth.CanAdminister(caller) {
		uid := caller.ID
		f.UserID = &uid
	}
	return s.reservations.List(f)
}

// Calendar returns calendar events for Confirmed reservations whose
// interval intersects the inclusive range [start, end].
func (s *ReservationService) Calendar(start, end time.Time, vehicleID int) ([]entities.CalendarEvent, error) {
	reservations, err := s.reservations.ListCalendar(start.UTC(), end.UTC(), vehicleID)
	if err != nil {
		return nil, err
	}
	events := make([]entities.CalendarEvent, 0, len(reservations))
	for i := range reservations {
		events = append(events, entities.NewCalendarEvent(&reservations[i]))
	}
	return events, nil
}

// canUserModify holds when the reservation is still Confirmed and starts
// at least the modification window from now.
func (s *ReservationService) canUserModify(res *db.Reservation) bool {
	if res.Status != db.ReservationStatusConfirmed {
		return false
	}
	return res.StartTime.Sub(time.Now().UTC()) >= s.modWindow
}

func validateStatusChange(old, updated string) error {
	if updated != db.ReservationStatusConfirmed && updated != db.ReservationStatusCancelled {
		return fmt.Errorf("%w: invalid status %q", errs.ErrValidation, updated)
	}
	if old == db.ReservationStatusCancelled && updated == db.ReservationStatusConfirmed {
		return fmt.Errorf("%w: cancelled reservations cannot be reinstated", errs.ErrValidation)
	}
	return nil
}
