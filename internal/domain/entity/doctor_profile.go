package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	LicenseNumber   string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Specialization  string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Biography       string          `gorm:"type:text" json:"biography,omitempty"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User                User                 `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AvailabilityWindows []AvailabilityWindow `gorm:"foreignKey:DoctorID" json:"availability_windows,omitempty"`
	Appointments        []Appointment        `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// Specialization legal values, validated once at the parameter-parsing layer.
const (
	SpecializationGeneral     = "general"
	SpecializationPediatrics  = "pediatrics"
	SpecializationCardiology  = "cardiology"
	SpecializationDermatology = "dermatology"
	SpecializationNeurology   = "neurology"
	SpecializationOrthopedics = "orthopedics"
)

// Specializations lists every legal specialization value.
var Specializations = []string{
	SpecializationGeneral,
	SpecializationPediatrics,
	SpecializationCardiology,
	SpecializationDermatology,
	SpecializationNeurology,
	SpecializationOrthopedics,
}
