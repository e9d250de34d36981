package entities

import (
	"time"

	"fleetreserve/internal/db"
)

const dateLayout = "2006-01-02"

type VehicleResponse struct {
	VehicleID                     int       `json:"vehicle_id"`
	Make                          string    `json:"make"`
	Model                         string    `json:"model"`
	LicensePlate                  string    `json:"license_plate"`
	Color                         *string   `json:"color"`
	FuelType                      string    `json:"fuel_type"`
	SeatingCapacity               int       `json:"seating_capacity"`
	TransmissionType              string    `json:"transmission_type"`
	Status                        string    `json:"status"`
	Description                   *string   `json:"description"`
	OdometerReading               int       `json:"odometer_reading"`
	LastServiceDate               *string   `json:"last_service_date"`
	NextServiceDate               *string   `json:"next_service_date"`
	TechnicalInspectionExpiryDate *string   `json:"technical_inspection_expiry_date"`
	HighwayVignetteExpiryDate     *string   `json:"highway_vignette_expiry_date"`
	EmissionInspectionExpiryDate  *string   `json:"emission_inspection_expiry_date"`
	EntryPermissionsNotes         *string   `json:"entry_permissions_notes"`
	CreatedAt                     time.Time `json:"created_at"`
	UpdatedAt                     time.Time `json:"updated_at"`
}

func NewVehicleResponse(v *db.Vehicle) VehicleResponse {
	return VehicleResponse{
		VehicleID:                     v.ID,
		Make:                          v.Make,
		Model:                         v.Model,
		LicensePlate:                  v.LicensePlate,
		Color:                         v.Color,
		FuelType:                      v.FuelType,
		SeatingCapacity:               v.SeatingCapacity,
		TransmissionType:              v.TransmissionType,
		Status:                        v.Status,
		Description:                   v.Description,
		OdometerReading:               v.OdometerReading,
		LastServiceDate:               formatDate(v.LastServiceDate),
		NextServiceDate:               formatDate(v.NextServiceDate),
		TechnicalInspectionExpiryDate: formatDate(v.TechnicalInspectionExpiryDate),
		HighwayVignetteExpiryDate:     formatDate(v.HighwayVignetteExpiryDate),
		EmissionInspectionExpiryDate:  formatDate(v.EmissionInspectionExpiryDate),
		EntryPermissionsNotes:         v.EntryPermissionsNotes,
		CreatedAt:                     v.CreatedAt,
		UpdatedAt:                     v.UpdatedAt,
	}
}

func NewVehicleResponses(vs []db.Vehicle) []VehicleResponse {
	out := make([]VehicleResponse, 0, len(vs))
	for i := range vs {
		out = append(out, NewVehicleResponse(&vs[i]))
	}
	return out
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
