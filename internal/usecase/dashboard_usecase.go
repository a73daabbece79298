package usecase

import (
	"context"
	"time"

	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/domain/entity"
	"clinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DashboardUsecase interface {
	AdminDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error)
	DoctorDashboard(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorDashboardResponse, error)
}

type dashboardUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	userRepo        repository.UserRepository
	appointmentRepo repository.AppointmentRepository
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
) DashboardUsecase {
	return &dashboardUsecase{
		db:              db,
		log:             log,
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
	}
}

func (u *dashboardUsecase) AdminDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	db := u.db.WithContext(ctx)
	out := &dto.AdminDashboardResponse{}

	var err error
	if out.TotalPatients, err = u.userRepo.CountByRole(db, entity.RoleIDPatient); err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}
	if out.TotalDoctors, err = u.userRepo.CountByRole(db, entity.RoleIDDoctor); err != nil {
		u.log.Warnf("Failed to count doctors: %+v", err)
		return nil, err
	}
	if out.UnverifiedDoctors, err = u.userRepo.CountUnverifiedDoctors(db); err != nil {
		u.log.Warnf("Failed to count unverified doctors: %+v", err)
		return nil, err
	}

	today, tomorrow := dayBounds(time.Now())
	if out.AppointmentsToday, err = u.appointmentRepo.CountLiveBetween(db, nil, today, tomorrow); err != nil {
		u.log.Warnf("Failed to count today's appointments: %+v", err)
		return nil, err
	}
	if out.ScheduledTotal, err = u.appointmentRepo.CountByStatus(db, nil, entity.AppointmentStatusScheduled); err != nil {
		return nil, err
	}
	if out.DoneTotal, err = u.appointmentRepo.CountByStatus(db, nil, entity.AppointmentStatusDone); err != nil {
		return nil, err
	}
	if out.CancelledTotal, err = u.appointmentRepo.CountByStatus(db, nil, entity.AppointmentStatusCancelled); err != nil {
		return nil, err
	}

	return out, nil
}

func (u *dashboardUsecase) DoctorDashboard(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorDashboardResponse, error) {
	db := u.db.WithContext(ctx)
	out := &dto.DoctorDashboardResponse{}

	var err error
	today, tomorrow := dayBounds(time.Now())
	if out.AppointmentsToday, err = u.appointmentRepo.CountLiveBetween(db, &doctorID, today, tomorrow); err != nil {
		u.log.Warnf("Failed to count today's appointments: %+v", err)
		return nil, err
	}
	if out.ScheduledTotal, err = u.appointmentRepo.CountByStatus(db, &doctorID, entity.AppointmentStatusScheduled); err != nil {
		return nil, err
	}
	if out.DoneTotal, err = u.appointmentRepo.CountByStatus(db, &doctorID, entity.AppointmentStatusDone); err != nil {
		return nil, err
	}
	if out.CancelledTotal, err = u.appointmentRepo.CountByStatus(db, &doctorID, entity.AppointmentStatusCancelled); err != nil {
		return nil, err
	}

	return out, nil
}

// dayBounds returns local midnight of the given day and of the next.
func dayBounds(at time.Time) (time.Time, time.Time) {
	local := at.In(time.Local)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 0, 1)
}
