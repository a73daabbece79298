package repository

import (
	"errors"
	"fmt"

	"clinic-booking/internal/domain/entity"
	domainRepo "clinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Create(profile).Error
}

func (r *doctorProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Omit("User").Save(profile).Error
}

// FindDirectory returns doctors whose account is active and verified.
// That scope is fixed here and cannot be widened by the filter.
func (r *doctorProfileRepository) FindDirectory(db *gorm.DB, filter *entity.DoctorFilter) ([]entity.DoctorProfile, int64, error) {
	query := db.Model(&entity.DoctorProfile{}).
		Joins("JOIN users ON users.id = doctor_profiles.user_id").
		Where("users.is_active = ? AND users.is_verified = ?", true, true)

	if filter.Specialization != "" {
		query = query.Where("doctor_profiles.specialization = ?", filter.Specialization)
	}
	for _, term := range filter.NameTerms {
		pattern := "%" + term + "%"
		query = query.Where("(users.first_name ILIKE ? OR users.last_name ILIKE ?)", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderColumn := "doctor_profiles." + filter.Page.SortBy
	if filter.Page.SortBy == "last_name" || filter.Page.SortBy == "first_name" {
		orderColumn = "users." + filter.Page.SortBy
	}

	var profiles []entity.DoctorProfile
	err := query.
		Preload("User").
		Order(fmt.Sprintf("%s %s", orderColumn, filter.Page.SortOrder)).
		Offset(filter.Page.Offset).Limit(filter.Page.Limit).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}
