package entities

type AvailabilityResponse struct {
	VehicleID int    `json:"vehicle_id"`
	Available bool   `json:"available"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
