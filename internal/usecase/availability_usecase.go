package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"clinic-booking/config"
	"clinic-booking/internal/converter"
	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/domain/entity"
	"clinic-booking/internal/domain/repository"
	"clinic-booking/internal/service"
	"clinic-booking/internal/slots"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrWindowNotFound    = errors.New("availability window not found")
	ErrInvalidTimeWindow = errors.New("invalid time window, use HH:MM with start before end")
)

type AvailabilityUsecase interface {
	CreateWindow(ctx context.Context, doctorID uuid.UUID, req *dto.CreateWindowRequest) (*dto.WindowResponse, error)
	DeleteWindow(ctx context.Context, doctorID uuid.UUID, windowID int) error
	ListWindows(ctx context.Context, doctorID uuid.UUID) ([]dto.WindowResponse, error)
	GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.SlotsResponse, error)
}

type availabilityUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	slotsConfig       config.SlotsConfig
	windowRepo        repository.AvailabilityWindowRepository
	doctorProfileRepo repository.DoctorProfileRepository
	appointmentRepo   repository.AppointmentRepository
	auditService      service.AuditService
	slotCache         *service.SlotCacheService
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	slotsConfig config.SlotsConfig,
	windowRepo repository.AvailabilityWindowRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
	slotCache *service.SlotCacheService,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:                db,
		log:               log,
		slotsConfig:       slotsConfig,
		windowRepo:        windowRepo,
		doctorProfileRepo: doctorProfileRepo,
		appointmentRepo:   appointmentRepo,
		auditService:      auditService,
		slotCache:         slotCache,
	}
}

func (u *availabilityUsecase) CreateWindow(ctx context.Context, doctorID uuid.UUID, req *dto.CreateWindowRequest) (*dto.WindowResponse, error) {
	if !isLegalClockRange(req.StartTime, req.EndTime) {
		return nil, ErrInvalidTimeWindow
	}

	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	window := &entity.AvailabilityWindow{
		DoctorID:  doctorID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	if err := u.windowRepo.Create(tx, window); err != nil {
		u.log.Warnf("Failed to create availability window: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &doctorID, entity.AuditActionAvailabilityCreate, "availability_window", strconv.Itoa(window.ID), window)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	// Any cached day of this doctor may now show too few slots
	u.slotCache.InvalidateDoctor(ctx, doctorID)

	return converter.WindowToResponse(window), nil
}

func (u *availabilityUsecase) DeleteWindow(ctx context.Context, doctorID uuid.UUID, windowID int) error {
	window, err := u.windowRepo.FindByID(u.db.WithContext(ctx), windowID)
	if err != nil {
		u.log.Warnf("Failed to find availability window: %+v", err)
		return err
	}
	// A window owned by another doctor is reported as missing, not forbidden
	if window == nil || window.DoctorID != doctorID {
		return ErrWindowNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.windowRepo.Delete(tx, windowID)
	if err != nil {
		u.log.Warnf("Failed to delete availability window: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrWindowNotFound
	}

	u.auditService.LogDelete(ctx, tx, &doctorID, entity.AuditActionAvailabilityDelete, "availability_window", strconv.Itoa(window.ID), window)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.slotCache.InvalidateDoctor(ctx, doctorID)

	return nil
}

func (u *availabilityUsecase) ListWindows(ctx context.Context, doctorID uuid.UUID) ([]dto.WindowResponse, error) {
	windows, err := u.windowRepo.FindByDoctor(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to list availability windows: %+v", err)
		return nil, err
	}

	return converter.WindowsToResponses(windows), nil
}

// GetAvailableSlots computes the free bookable times of a doctor for one
// calendar date: the doctor's recurring windows for that weekday, cut into
// fixed-size slots, minus every non-cancelled appointment on that date.
func (u *availabilityUsecase) GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.SlotsResponse, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil || !isBookable(&profile.User) {
		return nil, ErrDoctorNotFound
	}

	if cached, ok := u.slotCache.Get(ctx, doctorID, date); ok {
		return &dto.SlotsResponse{DoctorID: doctorID, Date: date, Slots: cached}, nil
	}

	free, err := u.computeFreeSlots(ctx, doctorID, day)
	if err != nil {
		return nil, err
	}

	// Best effort; a failed write just means recomputing next time
	u.slotCache.Set(ctx, doctorID, date, free)

	return &dto.SlotsResponse{DoctorID: doctorID, Date: date, Slots: free}, nil
}

func (u *availabilityUsecase) computeFreeSlots(ctx context.Context, doctorID uuid.UUID, day time.Time) ([]string, error) {
	db := u.db.WithContext(ctx)

	windows, err := u.windowRepo.FindByDoctorAndDay(db, doctorID, int(day.Weekday()))
	if err != nil {
		u.log.Warnf("Failed to find availability windows: %+v", err)
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindLiveByDoctorBetween(db, doctorID, day, day.AddDate(0, 0, 1))
	if err != nil {
		u.log.Warnf("Failed to find appointments for slot computation: %+v", err)
		return nil, err
	}

	booked := make([]time.Time, len(appointments))
	for i, appointment := range appointments {
		booked[i] = appointment.ScheduledFor.In(time.Local)
	}

	slotWindows := make([]slots.Window, len(windows))
	for i, window := range windows {
		slotWindows[i] = slots.Window{Start: window.StartTime, End: window.EndTime}
	}

	free, err := slots.Generate(slotWindows, booked, slots.Options{
		Interval: time.Duration(u.slotsConfig.IntervalMinutes) * time.Minute,
		Dedupe:   u.slotsConfig.Dedupe,
	})
	if err != nil {
		// Windows are validated on write, so this points at bad data
		u.log.Errorf("Failed to generate slots for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return free, nil
}

// isBookable reports whether a doctor account may be shown to patients.
func isBookable(user *entity.User) bool {
	if user.IsActive != nil && !*user.IsActive {
		return false
	}
	if user.IsVerified != nil && !*user.IsVerified {
		return false
	}
	return true
}

func isLegalClockRange(start, end string) bool {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return false
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return false
	}
	return s.Before(e)
}
