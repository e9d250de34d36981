package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fleetreserve/internal/auth"
	"fleetreserve/internal/entities"
	errs "fleetreserve/internal/errors"
	"fleetreserve/internal/repository"
	"fleetreserve/internal/service"
)

type ReservationHandler struct {
	Service *service.ReservationService
}

func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())

	var f repository.ReservationFilter
	if v := r.URL.Query().Get("vehicle_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, fmt.Errorf("%w: invalid vehicle_id", errs.ErrValidation))
			return
		}
		f.VehicleID = &id
	}
	f.Status = r.URL.Query().Get("status")
	if v := r.URL.Query().Get("start_date"); v != "" {
		t, err := parseDateParam("start_date", v)
		if err != nil {
			writeError(w, err)
			return
		}
		f.StartDate = &t
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		t, err := parseDateParam("end_date", v)
		if err != nil {
			writeError(w, err)
			return
		}
		f.EndDate = &t
	}

	reservations, err := h.Service.List(caller, f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewReservationResponses(reservations))
}

func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := h.Service.Get(caller, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewReservationResponse(res))
}

func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())

	var req CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", errs.ErrValidation))
		return
	}
	if err := requireReservationFields(&req); err != nil {
		writeError(w, err)
		return
	}

	start, err := parseTimestamp("start_time", req.StartTime)
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseTimestamp("end_time", req.EndTime)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := h.Service.Create(caller, service.CreateReservationInput{
		VehicleID:          req.VehicleID,
		StartTime:          start,
		EndTime:            end,
		Purpose:            req.Purpose,
		Destination:        req.Destination,
		NumberOfPassengers: req.NumberOfPassengers,
		UserNotes:          req.UserNotes,
		AdminNotes:         req.AdminNotes,
		TargetUserID:       req.UserID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entities.NewReservationResponse(res))
}

func (h *ReservationHandler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req UpdateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", errs.ErrValidation))
		return
	}

	in := service.UpdateReservationInput{
		Purpose:            req.Purpose,
		Destination:        req.Destination,
		NumberOfPassengers: req.NumberOfPassengers,
		UserNotes:          req.UserNotes,
		AdminNotes:         req.AdminNotes,
		Status:             req.Status,
	}
	if req.StartTime != nil {
		t, err := parseTimestamp("start_time", *req.StartTime)
		if err != nil {
			writeError(w, err)
			return
		}
		in.StartTime = &t
	}
	if req.EndTime != nil {
		t, err := parseTimestamp("end_time", *req.EndTime)
		if err != nil {
			writeError(w, err)
			return
		}
		in.EndTime = &t
	}

	res, err := h.Service.Update(caller, id, in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewReservationResponse(res))
}

func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Service.Cancel(caller, id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Reservation cancelled successfully")
}

func (h *ReservationHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start_date")
	endStr := r.URL.Query().Get("end_date")
	if startStr == "" || endStr == "" {
		writeError(w, fmt.Errorf("%w: start_date and end_date parameters are required", errs.ErrValidation))
		return
	}

	start, err := parseDateParam("start_date", startStr)
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseDateParam("end_date", endStr)
	if err != nil {
		writeError(w, err)
		return
	}
	// end_date is inclusive through the whole day.
	end = end.Add(24*time.Hour - time.Second)

	vehicleID := 0
	if v := r.URL.Query().Get("vehicle_id"); v != "" {
		vehicleID, err = strconv.Atoi(v)
		if err != nil {
			writeError(w, fmt.Errorf("%w: invalid vehicle_id", errs.ErrValidation))
			return
		}
	}

	events, err := h.Service.Calendar(start, end, vehicleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// CheckAvailability answers whether a vehicle is free over an explicit
// [start_time, end_time) window.
func (h *ReservationHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	startStr := r.URL.Query().Get("start_time")
	endStr := r.URL.Query().Get("end_time")
	if startStr == "" || endStr == "" {
		writeError(w, fmt.Errorf("%w: start_time and end_time parameters are required", errs.ErrValidation))
		return
	}

	start, err := parseTimestamp("start_time", startStr)
	if err != nil {
		writeError(w, err)
		return
	}
	end, err := parseTimestamp("end_time", endStr)
	if err != nil {
		writeError(w, err)
		return
	}
	if !start.Before(end) {
		writeError(w, fmt.Errorf("%w: end time must be after start time", errs.ErrValidation))
		return
	}

	available, err := h.Service.CheckAvailability(id, start, end, 0)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.AvailabilityResponse{
		VehicleID: id,
		Available: available,
		StartTime: start.UTC().Format(time.RFC3339),
		EndTime:   end.UTC().Format(time.RFC3339),
	})
}

func requireReservationFields(req *CreateReservationRequest) error {
	switch {
	case req.VehicleID == 0:
		return fmt.Errorf("%w: vehicle_id is required", errs.ErrValidation)
	case req.StartTime == "":
		return fmt.Errorf("%w: start_time is required", errs.ErrValidation)
	case req.EndTime == "":
		return fmt.Errorf("%w: end_time is required", errs.ErrValidation)
	case req.Purpose == "":
		return fmt.Errorf("%w: purpose is required", errs.ErrValidation)
	case req.Destination == "":
		return fmt.Errorf("%w: destination is required", errs.ErrValidation)
	}
	return nil
}
