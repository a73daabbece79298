package repository

import (
	"errors"
	"fmt"

	"clinic-booking/internal/domain/entity"
	domainRepo "clinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *entity.User) error {
	return db.Create(user).Error
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	var user entity.User
	err := db.Preload("Role").Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := db.Preload("Role").Preload("DoctorProfile").Preload("PatientProfile").
		Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(db *gorm.DB, user *entity.User) error {
	return db.Omit("Role", "DoctorProfile", "PatientProfile").Save(user).Error
}

// FindFiltered composes a single predicate from the filter and runs the
// count plus the windowed page against it, so data and total stay
// consistent when the caller wraps both in one transaction.
func (r *userRepository) FindFiltered(db *gorm.DB, filter *entity.UserFilter) ([]entity.User, int64, error) {
	query := db.Model(&entity.User{})

	if filter.RoleID != nil {
		query = query.Where("role_id = ?", *filter.RoleID)
	}
	if filter.Verified != nil {
		query = query.Where("is_verified = ?", *filter.Verified)
	}
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}
	// Terms are AND-ed; each term may match either name field.
	for _, term := range filter.NameTerms {
		pattern := "%" + term + "%"
		query = query.Where("(first_name ILIKE ? OR last_name ILIKE ?)", pattern, pattern)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []entity.User
	err := query.
		Preload("Role").Preload("DoctorProfile").Preload("PatientProfile").
		Order(fmt.Sprintf("%s %s", filter.Page.SortBy, filter.Page.SortOrder)).
		Offset(filter.Page.Offset).Limit(filter.Page.Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) CountByRole(db *gorm.DB, roleID int) (int64, error) {
	var total int64
	err := db.Model(&entity.User{}).Where("role_id = ?", roleID).Count(&total).Error
	return total, err
}

func (r *userRepository) CountUnverifiedDoctors(db *gorm.DB) (int64, error) {
	var total int64
	err := db.Model(&entity.User{}).
		Where("role_id = ? AND is_verified = ? AND is_active = ?", entity.RoleIDDoctor, false, true).
		Count(&total).Error
	return total, err
}
