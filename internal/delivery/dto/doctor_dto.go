package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type UpdateDoctorProfileRequest struct {
	Specialization  string `json:"specialization" validate:"omitempty"`
	Biography       string `json:"biography" validate:"omitempty,max=2000"`
	ConsultationFee string `json:"consultation_fee" validate:"omitempty"`
}

// Response DTOs

type DoctorResponse struct {
	UserID          uuid.UUID `json:"user_id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	LicenseNumber   string    `json:"license_number"`
	Specialization  string    `json:"specialization"`
	Biography       string    `json:"biography,omitempty"`
	ConsultationFee string    `json:"consultation_fee"`
	IsVerified      bool      `json:"is_verified"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
