package handler

import (
	"encoding/json"
	"net/http"
	"net/url"

	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/delivery/http/middleware"
	"clinic-booking/internal/domain/entity"
	"clinic-booking/internal/usecase"
	"clinic-booking/pkg/query"
	"clinic-booking/pkg/response"
	"clinic-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// appointmentSortFields is the sortBy allow-list shared by every
// appointment list endpoint.
var appointmentSortFields = []string{"scheduled_for", "created_at", "status", "type"}

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// Book creates an appointment for the authenticated patient.
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Book(r.Context(), patientID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidTimeFormat:
			response.Error(w, http.StatusBadRequest, "Invalid scheduled time, use RFC 3339", nil)
		case usecase.ErrTimeInPast:
			response.Error(w, http.StatusBadRequest, "Cannot book a time in the past", nil)
		case usecase.ErrInvalidAppointmentType:
			response.Error(w, http.StatusBadRequest, "Unknown appointment type", nil)
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrSlotNotAvailable:
			response.Error(w, http.StatusBadRequest, "Time does not fall on an available slot", nil)
		case usecase.ErrSlotTaken:
			response.Error(w, http.StatusConflict, "Slot is already booked", nil)
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	callerID, roleID, ok := callerFromContext(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	appointmentID, err := parseAppointmentID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.Cancel(r.Context(), callerID, roleID, appointmentID)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrInvalidTransition:
			response.Error(w, http.StatusConflict, "Appointment can no longer be cancelled", nil)
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appointment)
}

// UpdateStatus lets the owning doctor walk an appointment through its
// lifecycle.
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	appointmentID, err := parseAppointmentID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateStatus(r.Context(), doctorID, appointmentID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidStatus:
			response.Error(w, http.StatusBadRequest, "Unknown appointment status", nil)
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrInvalidTransition:
			response.Error(w, http.StatusConflict, "Status transition not allowed", nil)
		default:
			response.InternalServerError(w, "Failed to update appointment status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}

func (h *AppointmentHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	appointmentID, err := parseAppointmentID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.UpdateAppointmentNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateNotes(r.Context(), doctorID, appointmentID, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		default:
			response.InternalServerError(w, "Failed to update appointment notes")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment notes updated successfully", appointment)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	callerID, roleID, ok := callerFromContext(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	appointmentID, err := parseAppointmentID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.GetByID(r.Context(), callerID, roleID, appointmentID)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		default:
			response.InternalServerError(w, "Failed to get appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

// ListAdmin serves the unscoped admin appointment list.
func (h *AppointmentHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, nil, nil)
}

// ListForDoctor serves appointments scoped to the authenticated doctor.
func (h *AppointmentHandler) ListForDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}
	h.list(w, r, &doctorID, nil)
}

// ListForPatient serves appointments scoped to the authenticated patient.
func (h *AppointmentHandler) ListForPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}
	h.list(w, r, nil, &patientID)
}

// list parses the shared filter parameters and runs the query with the
// caller's scope constraints already fixed.
func (h *AppointmentHandler) list(w http.ResponseWriter, r *http.Request, doctorID, patientID *uuid.UUID) {
	filter, pagination, err := parseAppointmentFilter(r.URL.Query())
	if err != nil {
		writeParamError(w, err)
		return
	}
	filter.DoctorID = doctorID
	filter.PatientID = patientID

	appointments, total, err := h.appointmentUsecase.List(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", appointments, buildMeta(*pagination, total))
}

func parseAppointmentFilter(values url.Values) (*entity.AppointmentFilter, *query.Pagination, error) {
	pagination, err := query.ParsePagination(values)
	if err != nil {
		return nil, nil, err
	}

	status, err := query.ParseEnum(values, "status", entity.AppointmentStatuses)
	if err != nil {
		return nil, nil, err
	}

	kind, err := query.ParseEnum(values, "type", entity.AppointmentTypes)
	if err != nil {
		return nil, nil, err
	}

	from, to, err := query.ParseDateRange(values)
	if err != nil {
		return nil, nil, err
	}

	sortBy, sortOrder := query.ParseSort(values, appointmentSortFields, "scheduled_for")

	filter := &entity.AppointmentFilter{
		Status:    entity.AppointmentStatus(status),
		Type:      entity.AppointmentType(kind),
		NameTerms: query.ParseSearchTerms(values, "search"),
		From:      from,
		To:        to,
		Page: entity.ListPage{
			Offset:    pagination.Offset(),
			Limit:     pagination.PageSize,
			SortBy:    sortBy,
			SortOrder: sortOrder,
		},
	}

	return filter, &pagination, nil
}

func parseAppointmentID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)["id"])
}

func callerFromContext(r *http.Request) (uuid.UUID, int, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, 0, false
	}
	roleID, ok := middleware.GetRoleIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, 0, false
	}
	return userID, roleID, true
}
