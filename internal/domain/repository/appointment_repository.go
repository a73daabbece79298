package repository

import (
	"time"

	"clinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	// FindFiltered runs the composed list predicate plus a matching count
	// with identical conditions.
	FindFiltered(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error)
	// FindLiveByDoctorAndTime returns the non-cancelled appointment at the
	// exact instant, if any.
	FindLiveByDoctorAndTime(db *gorm.DB, doctorID uuid.UUID, at time.Time) (*entity.Appointment, error)
	// FindLiveByDoctorBetween returns the doctor's non-cancelled
	// appointments inside [from, to).
	FindLiveByDoctorBetween(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.Appointment, error)
	CountByStatus(db *gorm.DB, doctorID *uuid.UUID, status entity.AppointmentStatus) (int64, error)
	CountLiveBetween(db *gorm.DB, doctorID *uuid.UUID, from, to time.Time) (int64, error)
}
