package service

import (
	"fmt"
	"time"

	"fleetreserve/internal/auth"
	"fleetreserve/internal/db"
	errs "fleetreserve/internal/errors"
)

type VehicleStore interface {
	GetByID(id int) (*db.Vehicle, error)
	List(status string) ([]db.Vehicle, error)
	PlateExists(plate string, excludeID int) (bool, error)
	Create(v *db.Vehicle) error
	Update(v *db.Vehicle) error
	Archive(id int) error
}

type VehicleService struct {
	vehicles VehicleStore
}

func NewVehicleService(vehicles VehicleStore) *VehicleService {
	return &VehicleService{vehicles: vehicles}
}

func (s *VehicleService) List(status string) ([]db.Vehicle, error) {
	return s.vehicles.List(status)
}

func (s *VehicleService) Get(id int) (*db.Vehicle, error) {
	return s.vehicles.GetByID(id)
}

type CreateVehicleInput struct {
	Make                          string
	Model                         string
	LicensePlate                  string
	Color                         *string
	FuelType                      string
	SeatingCapacity               int
	TransmissionType              string
	Status                        string
	Description                   *string
	OdometerReading               int
	LastServiceDate               *string
	NextServiceDate               *string
	TechnicalInspectionExpiryDate *string
	HighwayVignetteExpiryDate     *string
	EmissionInspectionExpiryDate  *string
	EntryPermissionsNotes         *string
}

func (s *VehicleService) Create(caller *db.AppUser, in CreateVehicleInput) (*db.Vehicle, error) {
	if !auth.CanAdminister(caller) {
		return nil, errs.ErrAccessDenied
	}

	exists, err := s.vehicles.PlateExists(in.LicensePlate, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: vehicle with this license plate already exists", errs.ErrValidation)
	}

	status := in.Status
	if status == "" {
		status = db.VehicleStatusActive
	}
	if status != db.VehicleStatusActive && status != db.VehicleStatusArchived {
		return nil, fmt.Errorf("%w: invalid vehicle status %q", errs.ErrValidation, status)
	}

	v := &db.Vehicle{
		Make:                  in.Make,
		Model:                 in.Model,
		LicensePlate:          in.LicensePlate,
		Color:                 in.Color,
		FuelType:              in.FuelType,
		SeatingCapacity:       in.SeatingCapacity,
		TransmissionType:      in.TransmissionType,
		Status:                status,
		Description:           in.Description,
		OdometerReading:       in.OdometerReading,
		EntryPermissionsNotes: in.EntryPermissionsNotes,
	}

	dates := []struct {
		name string
		in   *string
		out  **time.Time
	}{
		{"last_service_date", in.LastServiceDate, &v.LastServiceDate},
		{"next_service_date", in.NextServiceDate, &v.NextServiceDate},
		{"technical_inspection_expiry_date", in.TechnicalInspectionExpiryDate, &v.TechnicalInspectionExpiryDate},
		{"highway_vignette_expiry_date", in.HighwayVignetteExpiryDate, &v.HighwayVignetteExpiryDate},
		{"emission_inspection_expiry_date", in.EmissionInspectionExpiryDate, &v.EmissionInspectionExpiryDate},
	}
	for _, d := range dates {
		if d.in == nil {
			continue
		}
		parsed, err := parseDate(d.name, *d.in)
		if err != nil {
			return nil, err
		}
		*d.out = parsed
	}

	if err := s.vehicles.Create(v); err != nil {
		return nil, err
	}
	return v, nil
}

type UpdateVehicleInput struct {
	Make                          *string
	Model                         *string
	LicensePlate                  *string
	Color                         *string
	FuelType                      *string
	SeatingCapacity               *int
	TransmissionType              *string
	Status                        *string
	Description                   *string
	OdometerReading               *int
	LastServiceDate               *string
	NextServiceDate               *string
	TechnicalInspectionExpiryDate *string
	HighwayVignetteExpiryDate     *string
	EmissionInspectionExpiryDate  *string
	EntryPermissionsNotes         *string
}

func (s *VehicleService) Update(caller *db.AppUser, id int, in UpdateVehicleInput) (*db.Vehicle, error) {
	if !auth.CanAdminister(caller) {
		return nil, errs.ErrAccessDenied
	}

	v, err := s.vehicles.GetByID(id)
	if err != nil {
		return nil, err
	}

	if in.LicensePlate != nil && *in.LicensePlate != v.LicensePlate {
		exists, err := s.vehicles.PlateExists(*in.LicensePlate, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: vehicle with this license plate already exists", errs.ErrValidation)
		}
		v.LicensePlate = *in.LicensePlate
	}
	if in.Make != nil {
		v.Make = *in.Make
	}
	if in.Model != nil {
		v.Model = *in.Model
	}
	if in.Color != nil {
		v.Color = in.Color
	}
	if in.FuelType != nil {
		v.FuelType = *in.FuelType
	}
	if in.SeatingCapacity != nil {
		v.SeatingCapacity = *in.SeatingCapacity
	}
	if in.TransmissionType != nil {
		v.TransmissionType = *in.TransmissionType
	}
	if in.Status != nil {
		if *in.Status != db.VehicleStatusActive && *in.Status != db.VehicleStatusArchived {
			return nil, fmt.Errorf("%w: invalid vehicle status %q", errs.ErrValidation, *in.Status)
		}
		v.Status = *in.Status
	}
	if in.Description != nil {
		v.Description = in.Description
	}
	if in.OdometerReading != nil {
		v.OdometerReading = *in.OdometerReading
	}
	if in.EntryPermissionsNotes != nil {
		v.EntryPermissionsNotes = in.EntryPermissionsNotes
	}

	dates := []struct {
		name string
		in   *string
		out  **time.Time
	}{
		{"last_service_date", in.LastServiceDate, &v.LastServiceDate},
		{"next_service_date", in.NextServiceDate, &v.NextServiceDate},
		{"technical_inspection_expiry_date", in.TechnicalInspectionExpiryDate, &v.TechnicalInspectionExpiryDate},
		{"highway_vignette_expiry_date", in.HighwayVignetteExpiryDate, &v.HighwayVignetteExpiryDate},
		{"emission_inspection_expiry_date", in.EmissionInspectionExpiryDate, &v.EmissionInspectionExpiryDate},
	}
	for _, d := range dates {
		if d.in == nil {
			continue
		}
		parsed, err := parseDate(d.name, *d.in)
		if err != nil {
			return nil, err
		}
		*d.out = parsed
	}

	if err := s.vehicles.Update(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Archive takes a vehicle out of the bookable fleet; existing
// reservations are untouched, new ones are refused by availability.
func (s *VehicleService) Archive(caller *db.AppUser, id int) error {
	if !auth.CanAdminister(caller) {
		return errs.ErrAccessDenied
	}
	if _, err := s.vehicles.GetByID(id); err != nil {
		return err
	}
	return s.vehicles.Archive(id)
}

// parseDate parses a YYYY-MM-DD value; an empty string clears the field.
func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format for %s, use YYYY-MM-DD", errs.ErrValidation, field)
	}
	return &t, nil
}
