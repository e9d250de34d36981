package service

import (
	"fleetreserve/internal/auth"
	"fleetreserve/internal/db"
	errs "fleetreserve/internal/errors"
)

type RecordStore interface {
	GetServiceRecord(id int) (*db.ServiceRecord, error)
	ListServiceRecords(vehicleID int) ([]db.ServiceRecord, error)
	CreateServiceRecord(rec *db.ServiceRecord) error
	UpdateServiceRecord(rec *db.ServiceRecord) error
	DeleteServiceRecord(id int) error
	GetDamageRecord(id int) (*db.DamageRecord, error)
	ListDamageRecords(vehicleID int) ([]db.DamageRecord, error)
	CreateDamageRecord(rec *db.DamageRecord) error
	UpdateDamageRecord(rec *db.DamageRecord) error
	DeleteDamageRecord(id int) error
}

// RecordService manages vehicle maintenance history. Service records are
// administrator-only; damage records may be reported by any employee but
// only administrators edit or remove them.
type RecordService struct {
	records  RecordStore
	vehicles VehicleGetter
}

func NewRecordService(records RecordStore, vehicles VehicleGetter) *RecordService {
	return &RecordService{records: records, vehicles: vehicles}
}

func (s *RecordService) ListServiceRecords(vehicleID int) ([]db.ServiceRecord, error) {
	return s.records.ListServiceRecords(vehicleID)
}

func (s *RecordService) GetServiceRecord(id int) (*db.ServiceRecord, error) {
	return s.records.GetServiceRecord(id)
}

func (s *RecordService) CreateServiceRecord(caller *db.AppUser, rec *db.ServiceRecord) (*db.ServiceRecord, error) {
	if !auth.CanAdminister(caller) {
		return nil, errs.ErrAccessDenied
	}
	if _, err := s.vehicles.GetByID(rec.VehicleID); err != nil {
		return nil, err
	}
	if err := s.records.CreateServiceRecord(rec); err != nil {
		return nil, err
	}
	return s.records.GetServiceRecord(rec.ID)
}

func (s *RecordService) UpdateServiceRecord(caller *db.AppUser, rec *db.ServiceRecord) (*db.ServiceRecord, error) {
	if !auth.CanAdminister(caller) {
		return nil, errs.ErrAccessDenied
	}
	if err := s.records.UpdateServiceRecord(rec); err != nil {
		return nil, err
	}
	return s.records.GetServiceRecord(rec.ID)
}

func (s *RecordService) DeleteServiceRecord(caller *db.AppUser, id int) error {
	if !auth.CanAdminister(caller) {
		return errs.ErrAccessDenied
	}
	return s.records.DeleteServiceRecord(id)
}

func (s *RecordService) ListDamageRecords(vehicleID int) ([]db.DamageRecord, error) {
	return s.records.ListDamageRecords(vehicleID)
}

func (s *RecordService) GetDamageRecord(id int) (*db.DamageRecord, error) {
	return s.records.GetDamageRecord(id)
}

func (s *RecordService) CreateDamageRecord(caller *db.AppUser, rec *db.DamageRecord) (*db.DamageRecord, error) {
	if _, err := s.vehicles.GetByID(rec.VehicleID); err != nil {
		return nil, err
	}
	if rec.RepairStatus == "" {
		rec.RepairStatus = db.RepairStatusPending
	}
	if err := s.records.CreateDamageRecord(rec); err != nil {
		return nil, err
	}
	return s.records.GetDamageRecord(rec.ID)
}

func (s *RecordService) UpdateDamageRecord(caller *db.AppUser, rec *db.DamageRecord) (*db.DamageRecord, error) {
	if !auth.CanAdminister(caller) {
		return nil, errs.ErrAccessDenied
	}
	if err := s.records.UpdateDamageRecord(rec); err != nil {
		return nil, err
	}
	return s.records.GetDamageRecord(rec.ID)
}

func (s *RecordService) DeleteDamageRecord(caller *db.AppUser, id int) error {
	if !auth.CanAdminister(caller) {
		return errs.ErrAccessDenied
	}
	return s.records.DeleteDamageRecord(id)
}
