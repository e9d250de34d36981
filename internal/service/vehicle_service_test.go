package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetreserve/internal/db"
	errs "fleetreserve/internal/errors"
)

type fakeVehicleStore struct {
	nextID   int
	vehicles map[int]*db.Vehicle
}

func newFakeVehicleStore() *fakeVehicleStore {
	return &fakeVehicleStore{nextID: 1, vehicles: map[int]*db.Vehicle{}}
}

func (f *fakeVehicleStore) GetByID(id int) (*db.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, errs.ErrVehicleNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVehicleStore) List(status string) ([]db.Vehicle, error) {
	var out []db.Vehicle
	for _, v := range f.vehicles {
		if status != "" && v.Status != status {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

func (f *fakeVehicleStore) PlateExists(plate string, excludeID int) (bool, error) {
	for _, v := range f.vehicles {
		if v.LicensePlate == plate && v.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeVehicleStore) Create(v *db.Vehicle) error {
	v.ID = f.nextID
	f.nextID++
	cp := *v
	f.vehicles[v.ID] = &cp
	return nil
}

func (f *fakeVehicleStore) Update(v *db.Vehicle) error {
	if _, ok := f.vehicles[v.ID]; !ok {
		return errs.ErrVehicleNotFound
	}
	cp := *v
	f.vehicles[v.ID] = &cp
	return nil
}

func (f *fakeVehicleStore) Archive(id int) error {
	v, ok := f.vehicles[id]
	if !ok {
		return errs.ErrVehicleNotFound
	}
	v.Status = db.VehicleStatusArchived
	return nil
}

func vehicleInput(plate string) CreateVehicleInput {
	return CreateVehicleInput{
		Make:             "Skoda",
		Model:            "Octavia",
		LicensePlate:     plate,
		FuelType:         "Diesel",
		SeatingCapacity:  5,
		TransmissionType: "Manual",
	}
}

func TestCreateVehicle(t *testing.T) {
	store := newFakeVehicleStore()
	svc := NewVehicleService(store)

	inspection := "2027-03-31"
	in := vehicleInput("ABC-123")
	in.TechnicalInspectionExpiryDate = &inspection

	v, err := svc.Create(admin(9), in)
	require.NoError(t, err)
	assert.Equal(t, db.VehicleStatusActive, v.Status)
	require.NotNil(t, v.TechnicalInspectionExpiryDate)
	assert.Equal(t, "2027-03-31", v.TechnicalInspectionExpiryDate.Format("2006-01-02"))

	_, err = svc.Create(employee(1), vehicleInput("XYZ-999"))
	assert.ErrorIs(t, err, errs.ErrAccessDenied)
}

func TestCreateVehicleDuplicatePlate(t *testing.T) {
	store := newFakeVehicleStore()
	svc := NewVehicleService(store)

	_, err := svc.Create(admin(9), vehicleInput("ABC-123"))
	require.NoError(t, err)

	_, err = svc.Create(admin(9), vehicleInput("ABC-123"))
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestCreateVehicleInvalidInput(t *testing.T) {
	store := newFakeVehicleStore()
	svc := NewVehicleService(store)

	in := vehicleInput("ABC-123")
	in.Status = "Broken"
	_, err := svc.Create(admin(9), in)
	assert.ErrorIs(t, err, errs.ErrValidation)

	bad := "31-03-2027"
	in = vehicleInput("DEF-456")
	in.NextServiceDate = &bad
	_, err = svc.Create(admin(9), in)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestUpdateVehicle(t *testing.T) {
	store := newFakeVehicleStore()
	svc := NewVehicleService(store)

	v, err := svc.Create(admin(9), vehicleInput("ABC-123"))
	require.NoError(t, err)
	other, err := svc.Create(admin(9), vehicleInput("XYZ-999"))
	require.NoError(t, err)

	// Keeping its own plate is not a duplicate.
	samePlate := "ABC-123"
	odometer := 54321
	updated, err := svc.Update(admin(9), v.ID, UpdateVehicleInput{LicensePlate: &samePlate, OdometerReading: &odometer})
	require.NoError(t, err)
	assert.Equal(t, 54321, updated.OdometerReading)

	takenPlate := "ABC-123"
	_, err = svc.Update(admin(9), other.ID, UpdateVehicleInput{LicensePlate: &takenPlate})
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.Update(employee(1), v.ID, UpdateVehicleInput{OdometerReading: &odometer})
	assert.ErrorIs(t, err, errs.ErrAccessDenied)
}

func TestArchiveVehicle(t *testing.T) {
	store := newFakeVehicleStore()
	svc := NewVehicleService(store)

	v, err := svc.Create(admin(9), vehicleInput("ABC-123"))
	require.NoError(t, err)

	require.NoError(t, svc.Archive(admin(9), v.ID))
	got, err := svc.Get(v.ID)
	require.NoError(t, err)
	assert.Equal(t, db.VehicleStatusArchived, got.Status)

	// The record survives archiving; only the active listing hides it.
	active, err := svc.List(db.VehicleStatusActive)
	require.NoError(t, err)
	assert.Empty(t, active)
	all, err := svc.List("")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	assert.ErrorIs(t, svc.Archive(admin(9), 404), errs.ErrVehicleNotFound)
	assert.ErrorIs(t, svc.Archive(employee(1), v.ID), errs.ErrAccessDenied)
}
