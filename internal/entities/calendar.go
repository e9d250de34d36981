package entities

import (
	"fmt"
	"time"

	"fleetreserve/internal/db"
)

// CalendarEvent is the shape the frontend calendar consumes.
type CalendarEvent struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	VehicleID   int       `json:"vehicle_id"`
	UserID      int       `json:"user_id"`
	Purpose     string    `json:"purpose"`
	Destination string    `json:"destination"`
}

func NewCalendarEvent(r *db.Reservation) CalendarEvent {
	return CalendarEvent{
		ID:          r.ID,
		Title:       fmt.Sprintf("%s - %s %s", r.VehiclePlate, r.UserFirstName, r.UserLastName),
		Start:       r.StartTime,
		End:         r.EndTime,
		VehicleID:   r.VehicleID,
		UserID:      r.UserID,
		Purpose:     r.Purpose,
		Destination: r.Destination,
	}
}
