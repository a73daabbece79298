package repository

import (
	"errors"
	"fmt"
	"time"

	"clinic-booking/internal/domain/entity"
	domainRepo "clinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Doctor.User").Preload("Patient.User").
		Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Doctor", "Patient").Save(appointment).Error
}

// FindFiltered composes a single predicate from the filter and runs the
// count plus the windowed page against it. Scope constraints
// (DoctorID/PatientID) come from the session, never from client input.
func (r *appointmentRepository) FindFiltered(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	query := db.Model(&entity.Appointment{})

	// Name search reaches through both participants, so the joins are
	// only added when there is something to search.
	if len(filter.NameTerms) > 0 {
		query = query.
			Joins("JOIN users AS doctor_users ON doctor_users.id = appointments.doctor_id").
			Joins("JOIN users AS patient_users ON patient_users.id = appointments.patient_id")
		for _, term := range filter.NameTerms {
			pattern := "%" + term + "%"
			query = query.Where(
				"(doctor_users.first_name ILIKE ? OR doctor_users.last_name ILIKE ? OR patient_users.first_name ILIKE ? OR patient_users.last_name ILIKE ?)",
				pattern, pattern, pattern, pattern,
			)
		}
	}

	if filter.DoctorID != nil {
		query = query.Where("appointments.doctor_id = ?", *filter.DoctorID)
	}
	if filter.PatientID != nil {
		query = query.Where("appointments.patient_id = ?", *filter.PatientID)
	}
	if filter.Status != "" {
		query = query.Where("appointments.status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("appointments.type = ?", filter.Type)
	}
	if filter.From != nil {
		query = query.Where("appointments.scheduled_for >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("appointments.scheduled_for <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []entity.Appointment
	err := query.
		Preload("Doctor.User").Preload("Patient.User").
		Order(fmt.Sprintf("appointments.%s %s", filter.Page.SortBy, filter.Page.SortOrder)).
		Offset(filter.Page.Offset).Limit(filter.Page.Limit).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}

	return appointments, total, nil
}

func (r *appointmentRepository) FindLiveByDoctorAndTime(db *gorm.DB, doctorID uuid.UUID, at time.Time) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.
		Where("doctor_id = ? AND scheduled_for = ? AND status <> ?", doctorID, at, entity.AppointmentStatusCancelled).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindLiveByDoctorBetween(db *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.
		Where("doctor_id = ? AND scheduled_for >= ? AND scheduled_for < ? AND status <> ?",
			doctorID, from, to, entity.AppointmentStatusCancelled).
		Order("scheduled_for ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) CountByStatus(db *gorm.DB, doctorID *uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	query := db.Model(&entity.Appointment{}).Where("status = ?", status)
	if doctorID != nil {
		query = query.Where("doctor_id = ?", *doctorID)
	}
	var total int64
	err := query.Count(&total).Error
	return total, err
}

func (r *appointmentRepository) CountLiveBetween(db *gorm.DB, doctorID *uuid.UUID, from, to time.Time) (int64, error) {
	query := db.Model(&entity.Appointment{}).
		Where("scheduled_for >= ? AND scheduled_for < ? AND status <> ?", from, to, entity.AppointmentStatusCancelled)
	if doctorID != nil {
		query = query.Where("doctor_id = ?", *doctorID)
	}
	var total int64
	err := query.Count(&total).Error
	return total, err
}
