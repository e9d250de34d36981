package db

import (
	"time"

	"github.com/lib/pq"
)

// Role names. The role table is extensible, but only these two carry
// built-in capabilities.
const (
	RoleEmployee   = "Employee"
	RoleFleetAdmin = "Fleet Administrator"
)

const (
	VehicleStatusActive   = "Active"
	VehicleStatusArchived = "Archived"
)

const (
	ReservationStatusConfirmed = "Confirmed"
	ReservationStatusCancelled = "Cancelled"
)

const (
	RepairStatusPending    = "Pending"
	RepairStatusInProgress = "In Progress"
	RepairStatusRepaired   = "Repaired"
	RepairStatusWontFix    = "Wont Fix"
)

type Role struct {
	ID          int
	RoleName    string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type AppUser struct {
	ID          int
	IntranetID  string
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber *string
	RoleID      int
	RoleName    string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsAdmin is the single capability check for administrator-only
// operations. Role comparisons must go through here.
func (u *AppUser) IsAdmin() bool {
	return u.RoleName == RoleFleetAdmin
}

type Vehicle struct {
	ID                            int
	Make                          string
	Model                         string
	LicensePlate                  string
	Color                         *string
	FuelType                      string
	SeatingCapacity               int
	TransmissionType              string
	Status                        string
	Description                   *string
	OdometerReading               int
	LastServiceDate               *time.Time
	NextServiceDate               *time.Time
	TechnicalInspectionExpiryDate *time.Time
	HighwayVignetteExpiryDate     *time.Time
	EmissionInspectionExpiryDate  *time.Time
	EntryPermissionsNotes         *string
	CreatedAt                     time.Time
	UpdatedAt                     time.Time
}

type Reservation struct {
	ID                 int
	VehicleID          int
	UserID             int
	StartTime          time.Time
	EndTime            time.Time
	Purpose            string
	Destination        string
	NumberOfPassengers *int
	Status             string
	UserNotes          *string
	AdminNotes         *string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined display fields, populated by reads that join vehicles and users.
	VehicleMake   string
	VehicleModel  string
	VehiclePlate  string
	UserFirstName string
	UserLastName  string
	UserEmail     string
	UserPhone     *string
}

type ServiceRecord struct {
	ID           int
	VehicleID    int
	ServiceDate  time.Time
	ServiceType  string
	Description  string
	Cost         *float64
	PerformedBy  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	VehicleMake  string
	VehicleModel string
	VehiclePlate string
}

type DamageRecord struct {
	ID            int
	VehicleID     int
	DateOfDamage  time.Time
	Description   string
	EstimatedCost *float64
	ActualCost    *float64
	RepairStatus  string
	Photos        pq.StringArray
	CreatedAt     time.Time
	UpdatedAt     time.Time
	VehicleMake   string
	VehicleModel  string
	VehiclePlate  string
}
