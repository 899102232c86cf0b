package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID  uuid.UUID `json:"doctor_id" validate:"required"`
	Date      string    `json:"date" validate:"required,datetime=2006-01-02"`   // Format: YYYY-MM-DD
	StartTime string    `json:"start_time" validate:"required,datetime=15:04"` // Format: HH:MM
	EndTime   string    `json:"end_time" validate:"required,datetime=15:04"`   // Format: HH:MM
}

type UpdateAppointmentRequest struct {
	Date      *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime *string `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime   *string `json:"end_time" validate:"omitempty,datetime=15:04"`
}

// Response DTOs

type AppointmentResponse struct {
	ID        uuid.UUID `json:"id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// ListAppointmentsRequest carries the optional schedule filters from the query string
type ListAppointmentsRequest struct {
	DoctorID string `validate:"omitempty,uuid"`
	Date     string `validate:"omitempty,datetime=2006-01-02"`
}
