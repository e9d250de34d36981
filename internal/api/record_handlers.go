package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"fleetreserve/internal/auth"
	"fleetreserve/internal/db"
	"fleetreserve/internal/entities"
	errs "fleetreserve/internal/errors"
	"fleetreserve/internal/service"
)

type RecordHandler struct {
	Service *service.RecordService
}

func NewRecordHandler(svc *service.RecordService) *RecordHandler {
	return &RecordHandler{Service: svc}
}

func (h *RecordHandler) ListServiceRecords(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := queryVehicleID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	records, err := h.Service.ListServiceRecords(vehicleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewServiceRecordResponses(records))
}

func (h *RecordHandler) GetServiceRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	rec, err := h.Service.GetServiceRecord(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewServiceRecordResponse(rec))
}

func (h *RecordHandler) CreateServiceRecord(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())

	rec, err := decodeServiceRecord(r)
	if err != nil {
		writeError(w, err)
		return
	}

	created, err := h.Service.CreateServiceRecord(caller, rec)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entities.NewServiceRecordResponse(created))
}

func (h *RecordHandler) UpdateServiceRecord(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	rec, err := decodeServiceRecord(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rec.ID = id

	updated, err := h.Service.UpdateServiceRecord(caller, rec)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewServiceRecordResponse(updated))
}

func (h *RecordHandler) DeleteServiceRecord(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Service.DeleteServiceRecord(caller, id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Service record deleted successfully")
}

func (h *RecordHandler) ListDamageRecords(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := queryVehicleID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	records, err := h.Service.ListDamageRecords(vehicleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewDamageRecordResponses(records))
}

func (h *RecordHandler) GetDamageRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	rec, err := h.Service.GetDamageRecord(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewDamageRecordResponse(rec))
}

// queryVehicleID reads the optional vehicle_id filter; 0 means all vehicles.
func queryVehicleID(r *http.Request) (int, error) {
	v := r.URL.Query().Get("vehicle_id")
	if v == "" {
		return 0, nil
	}
	id, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid vehicle_id", errs.ErrValidation)
	}
	return id, nil
}

func (h *RecordHandler) CreateDamageRecord(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())

	rec, err := decodeDamageRecord(r)
	if err != nil {
		writeError(w, err)
		return
	}

	created, err := h.Service.CreateDamageRecord(caller, rec)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entities.NewDamageRecordResponse(created))
}

func (h *RecordHandler) UpdateDamageRecord(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	rec, err := decodeDamageRecord(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rec.ID = id

	updated, err := h.Service.UpdateDamageRecord(caller, rec)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.NewDamageRecordResponse(updated))
}

func (h *RecordHandler) DeleteDamageRecord(w http.ResponseWriter, r *http.Request) {
	caller := auth.CallerFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.Service.DeleteDamageRecord(caller, id); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Damage record deleted successfully")
}

func decodeServiceRecord(r *http.Request) (*db.ServiceRecord, error) {
	var req ServiceRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: invalid request body", errs.ErrValidation)
	}
	switch {
	case req.VehicleID == 0:
		return nil, fmt.Errorf("%w: vehicle_id is required", errs.ErrValidation)
	case req.ServiceDate == "":
		return nil, fmt.Errorf("%w: service_date is required", errs.ErrValidation)
	case req.ServiceType == "":
		return nil, fmt.Errorf("%w: service_type is required", errs.ErrValidation)
	case req.Description == "":
		return nil, fmt.Errorf("%w: description is required", errs.ErrValidation)
	}

	date, err := parseDateParam("service_date", req.ServiceDate)
	if err != nil {
		return nil, err
	}
	return &db.ServiceRecord{
		VehicleID:   req.VehicleID,
		ServiceDate: date,
		ServiceType: req.ServiceType,
		Description: req.Description,
		Cost:        req.Cost,
		PerformedBy: req.PerformedBy,
	}, nil
}

func decodeDamageRecord(r *http.Request) (*db.DamageRecord, error) {
	var req DamageRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: invalid request body", errs.ErrValidation)
	}
	switch {
	case req.VehicleID == 0:
		return nil, fmt.Errorf("%w: vehicle_id is required", errs.ErrValidation)
	case req.DateOfDamage == "":
		return nil, fmt.Errorf("%w: date_of_damage is required", errs.ErrValidation)
	case req.Description == "":
		return nil, fmt.Errorf("%w: description is required", errs.ErrValidation)
	}
	if req.RepairStatus != "" {
		switch req.RepairStatus {
		case db.RepairStatusPending, db.RepairStatusInProgress, db.RepairStatusRepaired, db.RepairStatusWontFix:
		default:
			return nil, fmt.Errorf("%w: invalid repair_status", errs.ErrValidation)
		}
	}

	date, err := parseDateParam("date_of_damage", req.DateOfDamage)
	if err != nil {
		return nil, err
	}
	return &db.DamageRecord{
		VehicleID:     req.VehicleID,
		DateOfDamage:  date,
		Description:   req.Description,
		EstimatedCost: req.EstimatedCost,
		ActualCost:    req.ActualCost,
		RepairStatus:  req.RepairStatus,
		Photos:        req.Photos,
	}, nil
}
