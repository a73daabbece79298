package repository

import (
	"clinic-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	Update(db *gorm.DB, user *entity.User) error
	// FindFiltered runs the composed list predicate plus a matching count
	// with identical conditions.
	FindFiltered(db *gorm.DB, filter *entity.UserFilter) ([]entity.User, int64, error)
	CountByRole(db *gorm.DB, roleID int) (int64, error)
	CountUnverifiedDoctors(db *gorm.DB) (int64, error)
}
