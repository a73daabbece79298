package repository

import (
	"clinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityWindowRepository interface {
	Create(db *gorm.DB, window *entity.AvailabilityWindow) error
	FindByID(db *gorm.DB, id int) (*entity.AvailabilityWindow, error)
	FindByDoctor(db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilityWindow, error)
	FindByDoctorAndDay(db *gorm.DB, doctorID uuid.UUID, dayOfWeek int) ([]entity.AvailabilityWindow, error)
	// Delete returns the number of affected rows so callers can
	// distinguish "gone" from "never existed".
	Delete(db *gorm.DB, id int) (int64, error)
}
