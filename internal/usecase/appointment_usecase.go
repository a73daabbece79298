package usecase

import (
	"context"
	"database/sql"
	"errors"
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
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrSlotTaken              = errors.New("slot is already booked")
	ErrSlotNotAvailable       = errors.New("time does not fall on an available slot")
	ErrTimeInPast             = errors.New("scheduled time is in the past")
	ErrInvalidTimeFormat      = errors.New("invalid time format, use RFC 3339")
	ErrInvalidAppointmentType = errors.New("invalid appointment type")
	ErrInvalidStatus          = errors.New("invalid appointment status")
	ErrInvalidTransition      = errors.New("status transition not allowed")
)

type AppointmentUsecase interface {
	Book(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, callerID uuid.UUID, roleID int, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, doctorID uuid.UUID, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	UpdateNotes(ctx context.Context, doctorID uuid.UUID, appointmentID uuid.UUID, req *dto.UpdateAppointmentNotesRequest) (*dto.AppointmentResponse, error)
	GetByID(ctx context.Context, callerID uuid.UUID, roleID int, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	List(ctx context.Context, filter *entity.AppointmentFilter) ([]dto.AppointmentResponse, int64, error)
}

type appointmentUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	slotsConfig       config.SlotsConfig
	appointmentRepo   repository.AppointmentRepository
	doctorProfileRepo repository.DoctorProfileRepository
	windowRepo        repository.AvailabilityWindowRepository
	auditService      service.AuditService
	slotCache         *service.SlotCacheService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	slotsConfig config.SlotsConfig,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	windowRepo repository.AvailabilityWindowRepository,
	auditService service.AuditService,
	slotCache *service.SlotCacheService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                db,
		log:               log,
		slotsConfig:       slotsConfig,
		appointmentRepo:   appointmentRepo,
		doctorProfileRepo: doctorProfileRepo,
		windowRepo:        windowRepo,
		auditService:      auditService,
		slotCache:         slotCache,
	}
}

func (u *appointmentUsecase) Book(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	scheduledFor, err := time.Parse(time.RFC3339, req.ScheduledFor)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	if scheduledFor.Before(time.Now()) {
		return nil, ErrTimeInPast
	}
	if !isLegalAppointmentType(req.Type) {
		return nil, ErrInvalidAppointmentType
	}

	db := u.db.WithContext(ctx)

	profile, err := u.doctorProfileRepo.FindByUserID(db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil || !isBookable(&profile.User) {
		return nil, ErrDoctorNotFound
	}

	local := scheduledFor.In(time.Local)
	if local.Second() != 0 || local.Nanosecond() != 0 {
		return nil, ErrSlotNotAvailable
	}
	ok, err := u.fallsOnSlot(ctx, req.DoctorID, local)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSlotNotAvailable
	}

	// Cheap pre-check; the partial unique index is what actually closes
	// the race between two concurrent bookings.
	existing, err := u.appointmentRepo.FindLiveByDoctorAndTime(db, req.DoctorID, scheduledFor)
	if err != nil {
		u.log.Warnf("Failed to check for conflicting appointment: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment := &entity.Appointment{
		PatientID:    patientID,
		DoctorID:     req.DoctorID,
		ScheduledFor: scheduledFor,
		Type:         entity.AppointmentType(req.Type),
		Status:       entity.AppointmentStatusScheduled,
		Price:        profile.ConsultationFee,
		Notes:        req.Notes,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isDuplicateKeyError(err, "doctor_slot") {
			return nil, ErrSlotTaken
		}
		if isForeignKeyError(err, "patient") {
			return nil, ErrUserNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &patientID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), map[string]interface{}{
		"doctor_id":     appointment.DoctorID,
		"scheduled_for": appointment.ScheduledFor,
		"type":          appointment.Type,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.slotCache.Invalidate(ctx, req.DoctorID, local.Format("2006-01-02"))

	return u.reload(ctx, appointment.ID)
}

func (u *appointmentUsecase) Cancel(ctx context.Context, callerID uuid.UUID, roleID int, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.findScoped(ctx, callerID, roleID, appointmentID)
	if err != nil {
		return nil, err
	}

	if !appointment.CanTransition(entity.AppointmentStatusCancelled) {
		return nil, ErrInvalidTransition
	}

	oldStatus := appointment.Status

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment.Status = entity.AppointmentStatusCancelled
	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to cancel appointment: %+v", err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &callerID, entity.AuditActionAppointmentCancel, "appointment", appointment.ID.String(),
		map[string]interface{}{"status": oldStatus},
		map[string]interface{}{"status": appointment.Status},
	)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	// The slot is free again
	local := appointment.ScheduledFor.In(time.Local)
	u.slotCache.Invalidate(ctx, appointment.DoctorID, local.Format("2006-01-02"))

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) UpdateStatus(ctx context.Context, doctorID uuid.UUID, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	if !isLegalAppointmentStatus(req.Status) {
		return nil, ErrInvalidStatus
	}
	target := entity.AppointmentStatus(req.Status)

	appointment, err := u.findScoped(ctx, doctorID, entity.RoleIDDoctor, appointmentID)
	if err != nil {
		return nil, err
	}

	if !appointment.CanTransition(target) {
		return nil, ErrInvalidTransition
	}

	oldStatus := appointment.Status

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment.Status = target
	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment status: %+v", err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &doctorID, entity.AuditActionAppointmentStatus, "appointment", appointment.ID.String(),
		map[string]interface{}{"status": oldStatus},
		map[string]interface{}{"status": appointment.Status},
	)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if target == entity.AppointmentStatusCancelled {
		local := appointment.ScheduledFor.In(time.Local)
		u.slotCache.Invalidate(ctx, appointment.DoctorID, local.Format("2006-01-02"))
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) UpdateNotes(ctx context.Context, doctorID uuid.UUID, appointmentID uuid.UUID, req *dto.UpdateAppointmentNotesRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.findScoped(ctx, doctorID, entity.RoleIDDoctor, appointmentID)
	if err != nil {
		return nil, err
	}

	oldNotes := appointment.Notes

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment.Notes = req.Notes
	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment notes: %+v", err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &doctorID, entity.AuditActionAppointmentNotes, "appointment", appointment.ID.String(),
		map[string]interface{}{"notes": oldNotes},
		map[string]interface{}{"notes": appointment.Notes},
	)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetByID(ctx context.Context, callerID uuid.UUID, roleID int, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.findScoped(ctx, callerID, roleID, appointmentID)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}

// List runs the count and the page inside one read-only transaction, so
// the meta block cannot disagree with the rows.
func (u *appointmentUsecase) List(ctx context.Context, filter *entity.AppointmentFilter) ([]dto.AppointmentResponse, int64, error) {
	tx := u.db.WithContext(ctx).Begin(&sql.TxOptions{ReadOnly: true})
	defer tx.Rollback()

	appointments, total, err := u.appointmentRepo.FindFiltered(tx, filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, 0, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, 0, err
	}

	return converter.AppointmentsToResponses(appointments), total, nil
}

// findScoped loads an appointment and applies the caller's visibility:
// admins see everything, doctors and patients only their own. A row
// outside the caller's scope is reported as missing, never as forbidden,
// so the API does not leak which IDs exist.
func (u *appointmentUsecase) findScoped(ctx context.Context, callerID uuid.UUID, roleID int, appointmentID uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	switch roleID {
	case entity.RoleIDAdmin:
	case entity.RoleIDDoctor:
		if appointment.DoctorID != callerID {
			return nil, ErrAppointmentNotFound
		}
	case entity.RoleIDPatient:
		if appointment.PatientID != callerID {
			return nil, ErrAppointmentNotFound
		}
	default:
		return nil, ErrAppointmentNotFound
	}

	return appointment, nil
}

// fallsOnSlot checks that a local time lands exactly on a slot the
// doctor's recurring windows produce for that weekday. Existing bookings
// are deliberately not subtracted here; collisions surface as ErrSlotTaken.
func (u *appointmentUsecase) fallsOnSlot(ctx context.Context, doctorID uuid.UUID, local time.Time) (bool, error) {
	windows, err := u.windowRepo.FindByDoctorAndDay(u.db.WithContext(ctx), doctorID, int(local.Weekday()))
	if err != nil {
		u.log.Warnf("Failed to find availability windows: %+v", err)
		return false, err
	}

	slotWindows := make([]slots.Window, len(windows))
	for i, window := range windows {
		slotWindows[i] = slots.Window{Start: window.StartTime, End: window.EndTime}
	}

	all, err := slots.Generate(slotWindows, nil, slots.Options{
		Interval: time.Duration(u.slotsConfig.IntervalMinutes) * time.Minute,
		Dedupe:   true,
	})
	if err != nil {
		u.log.Errorf("Failed to generate slots for doctor %s: %+v", doctorID, err)
		return false, err
	}

	clock := local.Format("15:04")
	for _, slot := range all {
		if slot == clock {
			return true, nil
		}
	}
	return false, nil
}

func isLegalAppointmentType(value string) bool {
	for _, t := range entity.AppointmentTypes {
		if t == value {
			return true
		}
	}
	return false
}

func isLegalAppointmentStatus(value string) bool {
	for _, s := range entity.AppointmentStatuses {
		if s == value {
			return true
		}
	}
	return false
}

func (u *appointmentUsecase) reload(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to reload appointment: %+v", err)
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}
