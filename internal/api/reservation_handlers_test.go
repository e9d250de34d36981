package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetreserve/internal/auth"
	"fleetreserve/internal/db"
	errs "fleetreserve/internal/errors"
	"fleetreserve/internal/repository"
	"fleetreserve/internal/service"
)

type memReservationStore struct {
	nextID       int
	reservations map[int]*db.Reservation
}

func (m *memReservationStore) Create(res *db.Reservation) error {
	m.nextID++
	res.ID = m.nextID
	cp := *res
	m.reservations[res.ID] = &cp
	return nil
}

func (m *memReservationStore) Update(res *db.Reservation) error {
	cp := *res
	m.reservations[res.ID] = &cp
	return nil
}

func (m *memReservationStore) SetStatus(id int, status string) error {
	res, ok := m.reservations[id]
	if !ok {
		return errs.ErrReservationNotFound
	}
	res.Status = status
	return nil
}

func (m *memReservationStore) GetByID(id int) (*db.Reservation, error) {
	res, ok := m.reservations[id]
	if !ok {
		return nil, errs.ErrReservationNotFound
	}
	cp := *res
	return &cp, nil
}

func (m *memReservationStore) List(f repository.ReservationFilter) ([]db.Reservation, error) {
	var out []db.Reservation
	for _, res := range m.reservations {
		if f.UserID != nil && res.UserID != *f.UserID {
			continue
		}
		out = append(out, *res)
	}
	return out, nil
}

func (m *memReservationStore) ListCalendar(start, end time.Time, vehicleID int) ([]db.Reservation, error) {
	var out []db.Reservation
	for _, res := range m.reservations {
		if res.Status == db.ReservationStatusConfirmed {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (m *memReservationStore) HasOverlap(vehicleID int, start, end time.Time, excludeID int) (bool, error) {
	for _, res := range m.reservations {
		if res.VehicleID != vehicleID || res.ID == excludeID || res.Status != db.ReservationStatusConfirmed {
			continue
		}
		if res.StartTime.Before(end) && res.EndTime.After(start) {
			return true, nil
		}
	}
	return false, nil
}

type memVehicleGetter struct{}

func (memVehicleGetter) GetByID(id int) (*db.Vehicle, error) {
	if id != 1 {
		return nil, errs.ErrVehicleNotFound
	}
	return &db.Vehicle{ID: 1, LicensePlate: "ABC-123", Status: db.VehicleStatusActive}, nil
}

type memUserGetter struct{}

func (memUserGetter) GetByID(id int) (*db.AppUser, error) {
	return &db.AppUser{ID: id, RoleName: db.RoleEmployee, IsActive: true}, nil
}

func newTestRouter() (*mux.Router, *memReservationStore) {
	store := &memReservationStore{reservations: map[int]*db.Reservation{}}
	svc := service.NewReservationService(store, memVehicleGetter{}, memUserGetter{}, nil, 2*time.Hour)
	h := NewReservationHandler(svc)

	r := mux.NewRouter()
	r.HandleFunc("/api/reservations", h.ListReservations).Methods("GET")
	r.HandleFunc("/api/reservations", h.CreateReservation).Methods("POST")
	r.HandleFunc("/api/reservations/{id}", h.GetReservation).Methods("GET")
	r.HandleFunc("/api/reservations/{id}", h.CancelReservation).Methods("DELETE")
	r.HandleFunc("/api/vehicles/{id}/availability", h.CheckAvailability).Methods("GET")
	return r, store
}

func doAs(r *mux.Router, caller *db.AppUser, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req = req.WithContext(auth.WithCaller(req.Context(), caller))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func futureWindow() (string, string) {
	base := time.Now().UTC().Add(7 * 24 * time.Hour).Truncate(time.Hour)
	return base.Format(time.RFC3339), base.Add(3 * time.Hour).Format(time.RFC3339)
}

func TestCreateReservationHandler(t *testing.T) {
	router, _ := newTestRouter()
	emp := &db.AppUser{ID: 1, RoleName: db.RoleEmployee, IsActive: true}
	start, end := futureWindow()

	rec := doAs(router, emp, http.MethodPost, "/api/reservations", map[string]interface{}{
		"vehicle_id":  1,
		"start_time":  start,
		"end_time":    end,
		"purpose":     "Client visit",
		"destination": "Graz",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Confirmed", resp["status"])
	assert.EqualValues(t, 1, resp["user_id"])
}

func TestCreateReservationHandlerConflict(t *testing.T) {
	router, _ := newTestRouter()
	emp := &db.AppUser{ID: 1, RoleName: db.RoleEmployee, IsActive: true}
	start, end := futureWindow()

	body := map[string]interface{}{
		"vehicle_id":  1,
		"start_time":  start,
		"end_time":    end,
		"purpose":     "Client visit",
		"destination": "Graz",
	}
	require.Equal(t, http.StatusCreated, doAs(router, emp, http.MethodPost, "/api/reservations", body).Code)

	rec := doAs(router, emp, http.MethodPost, "/api/reservations", body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], "not available")
}

func TestCreateReservationHandlerValidation(t *testing.T) {
	router, _ := newTestRouter()
	emp := &db.AppUser{ID: 1, RoleName: db.RoleEmployee, IsActive: true}

	// Missing fields.
	rec := doAs(router, emp, http.MethodPost, "/api/reservations", map[string]interface{}{"vehicle_id": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Naive timestamps without a zone are refused.
	rec = doAs(router, emp, http.MethodPost, "/api/reservations", map[string]interface{}{
		"vehicle_id":  1,
		"start_time":  "2026-09-10T09:00:00",
		"end_time":    "2026-09-10T12:00:00",
		"purpose":     "Client visit",
		"destination": "Graz",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAndCancelReservationHandler(t *testing.T) {
	router, store := newTestRouter()
	emp := &db.AppUser{ID: 1, RoleName: db.RoleEmployee, IsActive: true}
	other := &db.AppUser{ID: 2, RoleName: db.RoleEmployee, IsActive: true}
	start, end := futureWindow()

	rec := doAs(router, emp, http.MethodPost, "/api/reservations", map[string]interface{}{
		"vehicle_id":  1,
		"start_time":  start,
		"end_time":    end,
		"purpose":     "Client visit",
		"destination": "Graz",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, http.StatusOK, doAs(router, emp, http.MethodGet, "/api/reservations/1", nil).Code)
	assert.Equal(t, http.StatusForbidden, doAs(router, other, http.MethodGet, "/api/reservations/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, doAs(router, emp, http.MethodGet, "/api/reservations/99", nil).Code)
	assert.Equal(t, http.StatusBadRequest, doAs(router, emp, http.MethodGet, "/api/reservations/abc", nil).Code)

	assert.Equal(t, http.StatusOK, doAs(router, emp, http.MethodDelete, "/api/reservations/1", nil).Code)
	got, err := store.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, db.ReservationStatusCancelled, got.Status)
}

func TestCheckAvailabilityHandler(t *testing.T) {
	router, _ := newTestRouter()
	emp := &db.AppUser{ID: 1, RoleName: db.RoleEmployee, IsActive: true}
	start, end := futureWindow()

	url := fmt.Sprintf("/api/vehicles/1/availability?start_time=%s&end_time=%s", start, end)
	rec := doAs(router, emp, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["available"])

	require.Equal(t, http.StatusCreated, doAs(router, emp, http.MethodPost, "/api/reservations", map[string]interface{}{
		"vehicle_id":  1,
		"start_time":  start,
		"end_time":    end,
		"purpose":     "Client visit",
		"destination": "Graz",
	}).Code)

	rec = doAs(router, emp, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["available"])

	assert.Equal(t, http.StatusBadRequest, doAs(router, emp, http.MethodGet, "/api/vehicles/1/availability", nil).Code)
	assert.Equal(t, http.StatusNotFound, doAs(router, emp, http.MethodGet,
		fmt.Sprintf("/api/vehicles/9/availability?start_time=%s&end_time=%s", start, end), nil).Code)
}
