package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type BookAppointmentRequest struct {
	DoctorID     uuid.UUID `json:"doctor_id" validate:"required"`
	ScheduledFor string    `json:"scheduled_for" validate:"required"` // Format: RFC 3339
	Type         string    `json:"type" validate:"required"`
	Notes        string    `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type UpdateAppointmentNotesRequest struct {
	Notes string `json:"notes" validate:"required,max=2000"`
}

// Response DTOs

type AppointmentResponse struct {
	ID           uuid.UUID        `json:"id"`
	Doctor       *ParticipantInfo `json:"doctor,omitempty"`
	Patient      *ParticipantInfo `json:"patient,omitempty"`
	ScheduledFor time.Time        `json:"scheduled_for"`
	Type         string           `json:"type"`
	Status       string           `json:"status"`
	Price        string           `json:"price"`
	Notes        string           `json:"notes,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ParticipantInfo is the compact doctor/patient block embedded in an
// appointment response.
type ParticipantInfo struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
}
