package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetreserve/internal/db"
	errs "fleetreserve/internal/errors"
	"fleetreserve/internal/repository"
)

type fakeReservationStore struct {
	nextID       int
	reservations map[int]*db.Reservation
}

func newFakeReservationStore() *fakeReservationStore {
	return &fakeReservationStore{nextID: 1, reservations: map[int]*db.Reservation{}}
}

func (f *fakeReservationStore) Create(res *db.Reservation) error {
	res.ID = f.nextID
	f.nextID++
	cp := *res
	f.reservations[res.ID] = &cp
	return nil
}

func (f *fakeReservationStore) Update(res *db.Reservation) error {
	if _, ok := f.reservations[res.ID]; !ok {
		return errs.ErrReservationNotFound
	}
	cp := *res
	f.reservations[res.ID] = &cp
	return nil
}

func (f *fakeReservationStore) SetStatus(id int, status string) error {
	res, ok := f.reservations[id]
	if !ok {
		return errs.ErrReservationNotFound
	}
	res.Status = status
	return nil
}

func (f *fakeReservationStore) GetByID(id int) (*db.Reservation, error) {
	res, ok := f.reservations[id]
	if !ok {
		return nil, errs.ErrReservationNotFound
	}
	cp := *res
	return &cp, nil
}

func (f *fakeReservationStore) List(filter repository.ReservationFilter) ([]db.Reservation, error) {
	var out []db.Reservation
	for _, res := range f.reservations {
		if filter.UserID != nil && res.UserID != *filter.UserID {
			continue
		}
		if filter.VehicleID != nil && res.VehicleID != *filter.VehicleID {
			continue
		}
		if filter.Status != "" && res.Status != filter.Status {
			continue
		}
		out = append(out, *res)
	}
	return out, nil
}

func (f *fakeReservationStore) ListCalendar(start, end time.Time, vehicleID int) ([]db.Reservation, error) {
	var out []db.Reservation
	for _, res := range f.reservations {
		if res.Status != db.ReservationStatusConfirmed {
			continue
		}
		if vehicleID != 0 && res.VehicleID != vehicleID {
			continue
		}
		if res.StartTime.After(end) || res.EndTime.Before(start) {
			continue
		}
		out = append(out, *res)
	}
	return out, nil
}

func (f *fakeReservationStore) HasOverlap(vehicleID int, start, end time.Time, excludeID int) (bool, error) {
	for _, res := range f.reservations {
		if res.VehicleID != vehicleID || res.ID == excludeID {
			continue
		}
		if res.Status != db.ReservationStatusConfirmed {
			continue
		}
		if res.StartTime.Before(end) && res.EndTime.After(start) {
			return true, nil
		}
	}
	return false, nil
}

type fakeVehicleGetter struct {
	vehicles map[int]*db.Vehicle
}

func (f *fakeVehicleGetter) GetByID(id int) (*db.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, errs.ErrVehicleNotFound
	}
	return v, nil
}

type fakeUserGetter struct {
	users map[int]*db.AppUser
}

func (f *fakeUserGetter) GetByID(id int) (*db.AppUser, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return u, nil
}

func employee(id int) *db.AppUser {
	return &db.AppUser{ID: id, RoleName: db.RoleEmployee, IsActive: true}
}

func admin(id int) *db.AppUser {
	return &db.AppUser{ID: id, RoleName: db.RoleFleetAdmin, IsActive: true}
}

type fixture struct {
	store    *fakeReservationStore
	vehicles *fakeVehicleGetter
	users    *fakeUserGetter
	svc      *ReservationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newFakeReservationStore()
	vehicles := &fakeVehicleGetter{vehicles: map[int]*db.Vehicle{
		1: {ID: 1, Make: "Skoda", Model: "Octavia", LicensePlate: "ABC-123", Status: db.VehicleStatusActive},
		2: {ID: 2, Make: "Ford", Model: "Transit", LicensePlate: "VAN-001", Status: db.VehicleStatusArchived},
	}}
	users := &fakeUserGetter{users: map[int]*db.AppUser{
		1: employee(1),
		2: employee(2),
		9: admin(9),
	}}
	svc := NewReservationService(store, vehicles, users, nil, 2*time.Hour)
	return &fixture{store: store, vehicles: vehicles, users: users, svc: svc}
}

// window returns [base+fromHours, base+toHours) anchored a week out so the
// past-start validation never interferes.
func window(fromHours, toHours int) (time.Time, time.Time) {
	base := time.Now().UTC().Add(7 * 24 * time.Hour).Truncate(time.Hour)
	return base.Add(time.Duration(fromHours) * time.Hour), base.Add(time.Duration(toHours) * time.Hour)
}

func createInput(vehicleID int, start, end time.Time) CreateReservationInput {
	return CreateReservationInput{
		VehicleID:   vehicleID,
		StartTime:   start,
		EndTime:     end,
		Purpose:     "Client visit",
		Destination: "Graz",
	}
}

func TestCreateReservation(t *testing.T) {
	f := newFixture(t)
	start, end := window(9, 12)

	res, err := f.svc.Create(employee(1), createInput(1, start, end))
	require.NoError(t, err)
	assert.Equal(t, db.ReservationStatusConfirmed, res.Status)
	assert.Equal(t, 1, res.UserID)
	assert.True(t, res.StartTime.Equal(start))
	assert.True(t, res.EndTime.Equal(end))
}

func TestCreateReservationValidation(t *testing.T) {
	f := newFixture(t)
	start, end := window(9, 12)

	_, err := f.svc.Create(employee(1), createInput(1, end, start))
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = f.svc.Create(employee(1), createInput(1, start, start))
	assert.ErrorIs(t, err, errs.ErrValidation)

	past := time.Now().UTC().Add(-time.Hour)
	_, err = f.svc.Create(employee(1), createInput(1, past, past.Add(2*time.Hour)))
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestCreateReservationVehicleNotFoundBeatsConflict(t *testing.T) {
	f := newFixture(t)
	start, end := window(9, 12)

	_, err := f.svc.Create(employee(1), createInput(42, start, end))
	assert.ErrorIs(t, err, errs.ErrVehicleNotFound)
}

func TestCreateReservationOverlapConflicts(t *testing.T) {
	f := newFixture(t)
	start, end := window(9, 12)
	_, err := f.svc.Create(employee(1), createInput(1, start, end))
	require.NoError(t, err)

	cases := []struct {
		name     string
		from, to int
	}{
		{"identical window", 9, 12},
		{"starts inside", 10, 14},
		{"ends inside", 7, 10},
		{"contains existing", 8, 13},
		{"contained by existing", 10, 11},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, e := window(tc.from, tc.to)
			_, err := f.svc.Create(employee(2), createInput(1, s, e))
			assert.ErrorIs(t, err, errs.ErrConflict)
		})
	}
}

func TestCreateReservationTouchingEndpointsAllowed(t *testing.T) {
	f := newFixture(t)
	start, end := window(9, 12)
	_, err := f.svc.Create(employee(1), createInput(1, start, end))
	require.NoError(t, err)

	// Back to back before and after the existing booking.
	before, _ := window(6, 9)
	_, err = f.svc.Create(employee(2), createInput(1, before, start))
	assert.NoError(t, err)

	_, after := window(12, 15)
	_, err = f.svc.Create(employee(2), createInput(1, end, after))
	assert.NoError(t, err)
}

func TestCreateReservationCancelledDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	start, end := window(9, 12)
	res, err := f.svc.Create(employee(1), createInput(1, start, end))
	require.NoError(t, err)

	require.NoError(t, f.svc.Cancel(employee(1), res.ID))

	_, err = f.svc.Create(employee(2), createInput(1, start, end))
	assert.NoError(t, err)
}

func TestCreateReservationArchivedVehicleUnavailable(t *testing.T) {
	f := newFixture(t)
	start, end := window(9, 12)

	_, err := f.svc.Create(employee(1), createInput(2, start, end))
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestCreateReservationDifferentVehiclesIndependent(t *testing.T) {
	f := newFixture(t)
	f.vehicles.vehicles[3] = &db.Vehicle{ID: 3, Status: db.VehicleStatusActive}
	start, end := window(9, 12)

	_, err := f.svc.Create(employee(1), createInput(1, start, end))
	require.NoError(t, err)
	_, err = f.svc.Create(employee(2), createInput(3, start, end))
	assert.NoError(t, err)
}

func TestCreateReservationAdminForTargetUser(t *testing.T) {
	f := newFixture(t)
	start, end := window(9, 12)

	target := 2
	in := createInput(1, start, end)
	in.TargetUserID = &target
	res, err := f.svc.Create(admin(9), in)
	require.NoError(t, err)
	assert.Equal(t, 2, res.UserID)

	missing := 77
	s2, e2 := window(13, 15)
	in2 := createInput(1, s2, e2)
	in2.TargetUserID = &missing
	_, err = f.svc.Create(admin(9), in2)
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestCreateReservationNonAdminTargetIgnored(t *testing.T) {
	f := newFixture(t)
	start, end := window(9, 12)

	target := 2
	notes := "priority booking"
	in := createInput(1, start, end)
	in.TargetUserID = &target
	in.AdminNotes = &notes
	res, err := f.svc.Create(employee(1), in)
	require.NoError(t, err)
	assert.Equal(t, 1, res.UserID)
	assert.Nil(t, res.AdminNotes)
}

func TestUpdateReservationReschedule(t *testing.T) {
	f := newFixture(t)
	start, end := window(9, 12)
	res, err := f.svc.Create(employee(1), createInput(1, start, end))
	require.NoError(t, err)

	// Shifting only the end keeps the stored start; the booking's own row
	// must not count against itself.
	_, newEnd := window(9, 14)
	updated, err := f.svc.Update(employee(1), res.ID, UpdateReservationInput{EndTime: &newEnd})
	require.NoError(t, err)
	assert.True(t, updated.StartTime.Equal(start))
	assert.True(t, updated.EndTime.Equal(newEnd))
}

func TestUpdateReservationConflictWithOther(t *testing.T) {
	f := newFixture(t)
	s1, e1 := window(9, 12)
	res, err := f.svc.Create(employee(1), createInput(1, s1, e1))
	require.NoError(t, err)

	s2, e2 := window(13, 15)
	_, err = f.svc.Create(employee(2), createInput(1, s2, e2))
	require.NoError(t, err)

	// Extending into the other booking must fail.
	_, newEnd := window(9, 14)
	_, err = f.svc.Update(employee(1), res.ID, UpdateReservationInput{EndTime: &newEnd})
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestUpdateReservationAccessControl(t *testing.T) {
	f := newFixture(t)
	start, end := window(9, 12)
	res, err := f.svc.Create(employee(1), createInput(1, start, end))
	require.NoError(t, err)

	purpose := "changed"
	_, err = f.svc.Update(employee(2), res.ID, UpdateReservationInput{Purpose: &purpose})
	assert.ErrorIs(t, err, errs.ErrAccessDenied)

	updated, err := f.svc.Update(admin(9), res.ID, UpdateReservationInput{Purpose: &purpose})
	require.NoError(t, err)
	assert.Equal(t, "changed", updated.Purpose)
}

func TestUpdateReservationInsideModificationWindow(t *testing.T) {
	f := newFixture(t)
	store := newFakeReservationStore()
	svc := NewReservationService(store, f.vehicles, f.users, nil, 2*time.Hour)

	// Starts in one hour, inside the two-hour window.
	soon := time.Now().UTC().Add(time.Hour)
	seed := &db.Reservation{
		VehicleID: 1, UserID: 1,
		StartTime: soon, EndTime: soon.Add(2 * time.Hour),
		Purpose: "Airport run", Destination: "Vienna",
		Status: db.ReservationStatusConfirmed,
	}
	require.NoError(t, store.Create(seed))

	purpose := "changed"
	_, err := svc.Update(employee(1), seed.ID, UpdateReservationInput{Purpose: &purpose})
	assert.ErrorIs(t, err, errs.ErrNotModifiable)

	err = svc.Cancel(employee(1), seed.ID)
	assert.ErrorIs(t, err, errs.ErrNotModifiable)

	// Administrators are not bound by the window.
	_, err = svc.Update(admin(9), seed.ID, UpdateReservationInput{Purpose: &purpose})
	assert.NoError(t, err)
	assert.NoError(t, svc.Cancel(admin(9), seed.ID))
}

func TestUpdateReservationAdminOnlyFieldsDropped(t *testing.T) {
	f := newFixture(t)
	start, end := window(9, 12)
	res, err := f.svc.Create(employee(1), createInput(1, start, end))
	require.NoError(t, err)

	notes := "fine to extend"
	status := db.ReservationStatusCancelled
	updated, err := f.svc.Update(employee(1), res.ID, UpdateReservationInput{AdminNotes: &notes, Status: &status})
	require.NoError(t, err)
	assert.Nil(t, updated.AdminNotes)
	assert.Equal(t, db.ReservationStatusConfirmed, updated.Status)

	updated, err = f.svc.Update(admin(9), res.ID, UpdateReservationInput{AdminNotes: &notes})
	require.NoError(t, err)
	require.NotNil(t, updated.AdminNotes)
	assert.Equal(t, "fine to extend", *updated.AdminNotes)
}

func TestUpdateReservationCancelledNotReinstatable(t *testing.T) {
	f := newFixture(t)
	start, end := window(9, 12)
	res, err := f.svc.Create(employee(1), createInput(1, start, end))
	require.NoError(t, err)
	require.NoError(t, f.svc.Cancel(admin(9), res.ID))

	status := db.ReservationStatusConfirmed
	_, err = f.svc.Update(admin(9), res.ID, UpdateReservationInput{Status: &status})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestCancelReservation(t *testing.T) {
	f := newFixture(t)
	start, end := window(9, 12)
	res, err := f.svc.Create(employee(1), createInput(1, start, end))
	require.NoError(t, err)

	require.NoError(t, f.svc.Cancel(employee(1), res.ID))
	got, err := f.store.GetByID(res.ID)
	require.NoError(t, err)
	assert.Equal(t, db.ReservationStatusCancelled, got.Status)

	// Cancelling again is a no-op for administrators.
	assert.NoError(t, f.svc.Cancel(admin(9), res.ID))

	err = f.svc.Cancel(employee(2), res.ID)
	assert.ErrorIs(t, err, errs.ErrAccessDenied)
}

func TestGetReservationAccessControl(t *testing.T) {
	f := newFixture(t)
	start, end := window(9, 12)
	res, err := f.svc.Create(employee(1), createInput(1, start, end))
	require.NoError(t, err)

	_, err = f.svc.Get(employee(2), res.ID)
	assert.ErrorIs(t, err, errs.ErrAccessDenied)

	_, err = f.svc.Get(admin(9), res.ID)
	assert.NoError(t, err)

	_, err = f.svc.Get(admin(9), 404)
	assert.ErrorIs(t, err, errs.ErrReservationNotFound)
}

func TestListReservationsScopedToOwner(t *testing.T) {
	f := newFixture(t)
	s1, e1 := window(9, 12)
	s2, e2 := window(13, 15)
	_, err := f.svc.Create(employee(1), createInput(1, s1, e1))
	require.NoError(t, err)
	_, err = f.svc.Create(employee(2), createInput(1, s2, e2))
	require.NoError(t, err)

	mine, err := f.svc.List(employee(1), repository.ReservationFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 1, mine[0].UserID)

	all, err := f.svc.List(admin(9), repository.ReservationFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCheckAvailability(t *testing.T) {
	f := newFixture(t)
	start, end := window(9, 12)
	res, err := f.svc.Create(employee(1), createInput(1, start, end))
	require.NoError(t, err)

	available, err := f.svc.CheckAvailability(1, start, end, 0)
	require.NoError(t, err)
	assert.False(t, available)

	// A rescheduling check for the same booking ignores its own row.
	available, err = f.svc.CheckAvailability(1, start, end, res.ID)
	require.NoError(t, err)
	assert.True(t, available)

	free, freeEnd := window(15, 18)
	available, err = f.svc.CheckAvailability(1, free, freeEnd, 0)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestCalendarIncludesIntersectingReservations(t *testing.T) {
	f := newFixture(t)
	start, end := window(9, 12)
	res, err := f.svc.Create(employee(1), createInput(1, start, end))
	require.NoError(t, err)
	require.NoError(t, f.svc.Cancel(employee(1), res.ID))

	s2, e2 := window(13, 15)
	confirmed, err := f.svc.Create(employee(2), createInput(1, s2, e2))
	require.NoError(t, err)

	events, err := f.svc.Calendar(start.Add(-24*time.Hour), e2.Add(24*time.Hour), 0)
	require.NoError(t, err)
	// Cancelled bookings never show on the calendar.
	require.Len(t, events, 1)
	assert.Equal(t, confirmed.ID, events[0].ID)
}
