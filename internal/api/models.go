package api

// Reservations
type CreateReservationRequest struct {
	VehicleID          int     `json:"vehicle_id"`
	StartTime          string  `json:"start_time"`
	EndTime            string  `json:"end_time"`
	Purpose            string  `json:"purpose"`
	Destination        string  `json:"destination"`
	NumberOfPassengers *int    `json:"number_of_passengers"`
	UserNotes          *string `json:"user_notes"`
	AdminNotes         *string `json:"admin_notes"`
	UserID             *int    `json:"user_id"`
}

type UpdateReservationRequest struct {
	StartTime          *string `json:"start_time"`
	EndTime            *string `json:"end_time"`
	Purpose            *string `json:"purpose"`
	Destination        *string `json:"destination"`
	NumberOfPassengers *int    `json:"number_of_passengers"`
	UserNotes          *string `json:"user_notes"`
	AdminNotes         *string `json:"admin_notes"`
	Status             *string `json:"status"`
}

// Vehicles
type CreateVehicleRequest struct {
	Make                          string  `json:"make"`
	Model                         string  `json:"model"`
	LicensePlate                  string  `json:"license_plate"`
	Color                         *string `json:"color"`
	FuelType                      string  `json:"fuel_type"`
	SeatingCapacity               int     `json:"seating_capacity"`
	TransmissionType              string  `json:"transmission_type"`
	Status                        string  `json:"status"`
	Description                   *string `json:"description"`
	OdometerReading               int     `json:"odometer_reading"`
	LastServiceDate               *string `json:"last_service_date"`
	NextServiceDate               *string `json:"next_service_date"`
	TechnicalInspectionExpiryDate *string `json:"technical_inspection_expiry_date"`
	HighwayVignetteExpiryDate     *string `json:"highway_vignette_expiry_date"`
	EmissionInspectionExpiryDate  *string `json:"emission_inspection_expiry_date"`
	EntryPermissionsNotes         *string `json:"entry_permissions_notes"`
}

type UpdateVehicleRequest struct {
	Make                          *string `json:"make"`
	Model                         *string `json:"model"`
	LicensePlate                  *string `json:"license_plate"`
	Color                         *string `json:"color"`
	FuelType                      *string `json:"fuel_type"`
	SeatingCapacity               *int    `json:"seating_capacity"`
	TransmissionType              *string `json:"transmission_type"`
	Status                        *string `json:"status"`
	Description                   *string `json:"description"`
	OdometerReading               *int    `json:"odometer_reading"`
	LastServiceDate               *string `json:"last_service_date"`
	NextServiceDate               *string `json:"next_service_date"`
	TechnicalInspectionExpiryDate *string `json:"technical_inspection_expiry_date"`
	HighwayVignetteExpiryDate     *string `json:"highway_vignette_expiry_date"`
	EmissionInspectionExpiryDate  *string `json:"emission_inspection_expiry_date"`
	EntryPermissionsNotes         *string `json:"entry_permissions_notes"`
}

// Auth
type LoginRequest struct {
	IntranetID string `json:"intranet_id"`
}

// Users and roles
type UpdateUserRoleRequest struct {
	RoleID *int `json:"role_id"`
}

type UpdateUserStatusRequest struct {
	IsActive *bool `json:"is_active"`
}

type CreateRoleRequest struct {
	RoleName    string  `json:"role_name"`
	Description *string `json:"description"`
}

// Maintenance records
type ServiceRecordRequest struct {
	VehicleID   int      `json:"vehicle_id"`
	ServiceDate string   `json:"service_date"`
	ServiceType string   `json:"service_type"`
	Description string   `json:"description"`
	Cost        *float64 `json:"cost"`
	PerformedBy *string  `json:"performed_by"`
}

type DamageRecordRequest struct {
	VehicleID     int      `json:"vehicle_id"`
	DateOfDamage  string   `json:"date_of_damage"`
	Description   string   `json:"description"`
	EstimatedCost *float64 `json:"estimated_cost"`
	ActualCost    *float64 `json:"actual_cost"`
	RepairStatus  string   `json:"repair_status"`
	Photos        []string `json:"photos"`
}
