package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusDone       AppointmentStatus = "done"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
)

// AppointmentStatuses lists every legal status value.
var AppointmentStatuses = []string{
	string(AppointmentStatusScheduled),
	string(AppointmentStatusInProgress),
	string(AppointmentStatusDone),
	string(AppointmentStatusCancelled),
}

// AppointmentType classifies the visit
type AppointmentType string

const (
	AppointmentTypeConsultation AppointmentType = "consultation"
	AppointmentTypeFollowUp     AppointmentType = "follow_up"
	AppointmentTypeCheckUp      AppointmentType = "check_up"
)

// AppointmentTypes lists every legal type value.
var AppointmentTypes = []string{
	string(AppointmentTypeConsultation),
	string(AppointmentTypeFollowUp),
	string(AppointmentTypeCheckUp),
}

// Appointment represents a patient visit booked against a doctor's slot.
// Rows are never hard-deleted; status transitions are the only mutation
// path after creation, plus doctor notes edits.
//
// A partial unique index on (doctor_id, scheduled_for) WHERE status <>
// 'cancelled' guarantees at most one live appointment per doctor and
// instant (see db/migrations).
type Appointment struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	ScheduledFor time.Time         `gorm:"type:timestamptz;not null;index" json:"scheduled_for"`
	Type         AppointmentType   `gorm:"type:varchar(20);not null" json:"type"`
	Status       AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Price        decimal.Decimal   `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	Notes        string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID;references:UserID" json:"patient,omitempty"`
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID;references:UserID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsScheduled checks if the appointment has not started yet
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsTerminal checks if no further transitions are allowed
func (a *Appointment) IsTerminal() bool {
	return a.Status == AppointmentStatusDone || a.Status == AppointmentStatusCancelled
}

// CanTransition reports whether moving to the target status is legal.
// scheduled -> in_progress | done | cancelled
// in_progress -> done | cancelled
// done, cancelled -> (terminal)
func (a *Appointment) CanTransition(to AppointmentStatus) bool {
	switch a.Status {
	case AppointmentStatusScheduled:
		return to == AppointmentStatusInProgress || to == AppointmentStatusDone || to == AppointmentStatusCancelled
	case AppointmentStatusInProgress:
		return to == AppointmentStatusDone || to == AppointmentStatusCancelled
	default:
		return false
	}
}
