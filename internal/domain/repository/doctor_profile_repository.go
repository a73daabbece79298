package repository

import (
	"clinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	Create(db *gorm.DB, profile *entity.DoctorProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
	Update(db *gorm.DB, profile *entity.DoctorProfile) error
	// FindDirectory lists active, verified doctors only; the filter never
	// widens that scope.
	FindDirectory(db *gorm.DB, filter *entity.DoctorFilter) ([]entity.DoctorProfile, int64, error)
}
