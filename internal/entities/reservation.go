package entities

import (
	"time"

	"fleetreserve/internal/db"
)

type VehicleInfo struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	LicensePlate string `json:"license_plate"`
}

type UserInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type ReservationResponse struct {
	ReservationID      int         `json:"reservation_id"`
	VehicleID          int         `json:"vehicle_id"`
	VehicleInfo        VehicleInfo `json:"vehicle_info"`
	UserID             int         `json:"user_id"`
	UserInfo           UserInfo    `json:"user_info"`
	StartTime          time.Time   `json:"start_time"`
	EndTime            time.Time   `json:"end_time"`
	Purpose            string      `json:"purpose"`
	Destination        string      `json:"destination"`
	NumberOfPassengers *int        `json:"number_of_passengers"`
	Status             string      `json:"status"`
	UserNotes          *string     `json:"user_notes"`
	AdminNotes         *string     `json:"admin_notes"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

func NewReservationResponse(r *db.Reservation) ReservationResponse {
	return ReservationResponse{
		ReservationID: r.ID,
		VehicleID:     r.VehicleID,
		VehicleInfo: VehicleInfo{
			Make:         r.VehicleMake,
			Model:        r.VehicleModel,
			LicensePlate: r.VehiclePlate,
		},
		UserID: r.UserID,
		UserInfo: UserInfo{
			FirstName: r.UserFirstName,
			LastName:  r.UserLastName,
			Email:     r.UserEmail,
		},
		StartTime:          r.StartTime,
		EndTime:            r.EndTime,
		Purpose:            r.Purpose,
		Destination:        r.Destination,
		NumberOfPassengers: r.NumberOfPassengers,
		Status:             r.Status,
		UserNotes:          r.UserNotes,
		AdminNotes:         r.AdminNotes,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func NewReservationResponses(rs []db.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(rs))
	for i := range rs {
		out = append(out, NewReservationResponse(&rs[i]))
	}
	return out
}
