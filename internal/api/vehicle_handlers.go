package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"fleetreserve/internal/auth"
	"fleetreserve/internal/db"
	"fleetreserve/internal/entities"
	errs "fleetreserve/internal/errors"
	"fleetreserve/internal/service"
)

type VehicleHandler struct {
	Service *service.VehicleService
}

func NewVehicleHandler(svc *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{Service: svc}
}

func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = db.VehicleStatusActive
	}
	if status == "all" {
		status = ""
	}

	vehicles, err := h.Service.List(status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewVehicleResponses(vehicles))
}

func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	vehicle, err := h.Service.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewVehicleResponse(vehicle))
}

func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())

	var req CreateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", errs.ErrValidation))
		return
	}
	if err := requireVehicleFields(&req); err != nil {
		writeError(w, err)
		return
	}

	vehicle, err := h.Service.Create(caller, service.CreateVehicleInput{
		Make:                          req.Make,
		Model:                         req.Model,
		LicensePlate:                  req.LicensePlate,
		Color:                         req.Color,
		FuelType:                      req.FuelType,
		SeatingCapacity:               req.SeatingCapacity,
		TransmissionType:              req.TransmissionType,
		Status:                        req.Status,
		Description:                   req.Description,
		OdometerReading:               req.OdometerReading,
		LastServiceDate:               req.LastServiceDate,
		NextServiceDate:               req.NextServiceDate,
		TechnicalInspectionExpiryDate: req.TechnicalInspectionExpiryDate,
		HighwayVignetteExpiryDate:     req.HighwayVignetteExpiryDate,
		EmissionInspectionExpiryDate:  req.EmissionInspectionExpiryDate,
		EntryPermissionsNotes:         req.EntryPermissionsNotes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entities.NewVehicleResponse(vehicle))
}

func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req UpdateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body", errs.ErrValidation))
		return
	}

	vehicle, err := h.Service.Update(caller, id, service.UpdateVehicleInput{
		Make:                          req.Make,
		Model:                         req.Model,
		LicensePlate:                  req.LicensePlate,
		Color:                         req.Color,
		FuelType:                      req.FuelType,
		SeatingCapacity:               req.SeatingCapacity,
		TransmissionType:              req.TransmissionType,
		Status:                        req.Status,
		Description:                   req.Description,
		OdometerReading:               req.OdometerReading,
		LastServiceDate:               req.LastServiceDate,
		NextServiceDate:               req.NextServiceDate,
		TechnicalInspectionExpiryDate: req.TechnicalInspectionExpiryDate,
		HighwayVignetteExpiryDate:     req.HighwayVignetteExpiryDate,
		EmissionInspectionExpiryDate:  req.EmissionInspectionExpiryDate,
		EntryPermissionsNotes:         req.EntryPermissionsNotes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewVehicleResponse(vehicle))
}

func (h *VehicleHandler) ArchiveVehicle(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Service.Archive(caller, id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Vehicle archived successfully")
}

func requireVehicleFields(req *CreateVehicleRequest) error {
	switch {
	case req.Make == "":
		return fmt.Errorf("%w: make is required", errs.ErrValidation)
	case req.Model == "":
		return fmt.Errorf("%w: model is required", errs.ErrValidation)
	case req.LicensePlate == "":
		return fmt.Errorf("%w: license_plate is required", errs.ErrValidation)
	case req.FuelType == "":
		return fmt.Errorf("%w: fuel_type is required", errs.ErrValidation)
	case req.SeatingCapacity == 0:
		return fmt.Errorf("%w: seating_capacity is required", errs.ErrValidation)
	case req.TransmissionType == "":
		return fmt.Errorf("%w: transmission_type is required", errs.ErrValidation)
	}
	return nil
}
