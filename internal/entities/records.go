package entities

import (
	"time"

	"fleetreserve/internal/db"
)

type ServiceRecordResponse struct {
	ServiceID   int         `json:"service_id"`
	VehicleID   int         `json:"vehicle_id"`
	VehicleInfo VehicleInfo `json:"vehicle_info"`
	ServiceDate string      `json:"service_date"`
	ServiceType string      `json:"service_type"`
	Description string      `json:"description"`
	Cost        *float64    `json:"cost"`
	PerformedBy *string     `json:"performed_by"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func NewServiceRecordResponse(r *db.ServiceRecord) ServiceRecordResponse {
	return ServiceRecordResponse{
		ServiceID: r.ID,
		VehicleID: r.VehicleID,
		VehicleInfo: VehicleInfo{
			Make:         r.VehicleMake,
			Model:        r.VehicleModel,
			LicensePlate: r.VehiclePlate,
		},
		ServiceDate: r.ServiceDate.Format(dateLayout),
		ServiceType: r.ServiceType,
		Description: r.Description,
		Cost:        r.Cost,
		PerformedBy: r.PerformedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func NewServiceRecordResponses(rs []db.ServiceRecord) []ServiceRecordResponse {
	out := make([]ServiceRecordResponse, 0, len(rs))
	for i := range rs {
		out = append(out, NewServiceRecordResponse(&rs[i]))
	}
	return out
}

type DamageRecordResponse struct {
	DamageID      int         `json:"damage_id"`
	VehicleID     int         `json:"vehicle_id"`
	VehicleInfo   VehicleInfo `json:"vehicle_info"`
	DateOfDamage  string      `json:"date_of_damage"`
	Description   string      `json:"description"`
	EstimatedCost *float64    `json:"estimated_cost"`
	ActualCost    *float64    `json:"actual_cost"`
	RepairStatus  string      `json:"repair_status"`
	Photos        []string    `json:"photos"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func NewDamageRecordResponse(r *db.DamageRecord) DamageRecordResponse {
	photos := []string(r.Photos)
	if photos == nil {
		photos = []string{}
	}
	return DamageRecordResponse{
		DamageID:  r.ID,
		VehicleID: r.VehicleID,
		VehicleInfo: VehicleInfo{
			Make:         r.VehicleMake,
			Model:        r.VehicleModel,
			LicensePlate: r.VehiclePlate,
		},
		DateOfDamage:  r.DateOfDamage.Format(dateLayout),
		Description:   r.Description,
		EstimatedCost: r.EstimatedCost,
		ActualCost:    r.ActualCost,
		RepairStatus:  r.RepairStatus,
		Photos:        photos,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func NewDamageRecordResponses(rs []db.DamageRecord) []DamageRecordResponse {
	out := make([]DamageRecordResponse, 0, len(rs))
	for i := range rs {
		out = append(out, NewDamageRecordResponse(&rs[i]))
	}
	return out
}
