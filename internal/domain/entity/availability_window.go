package entity

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityWindow is a recurring weekly interval during which a doctor
// accepts bookings. DayOfWeek follows time.Weekday: 0=Sunday .. 6=Saturday.
// Overlapping windows are allowed; slot derivation decides whether the
// resulting duplicate slots are collapsed.
type AvailabilityWindow struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index:idx_windows_doctor_day" json:"doctor_id"`
	DayOfWeek int       `gorm:"not null;index:idx_windows_doctor_day" json:"day_of_week"`
	StartTime string    `gorm:"type:varchar(5);not null" json:"start_time"` // "HH:MM"
	EndTime   string    `gorm:"type:varchar(5);not null" json:"end_time"`   // "HH:MM"
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (AvailabilityWindow) TableName() string {
	return "availability_windows"
}
