package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/delivery/http/middleware"
	"clinic-booking/internal/usecase"
	"clinic-booking/pkg/response"
	"clinic-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

// CreateWindow adds a recurring weekly availability window for the
// authenticated doctor.
func (h *AvailabilityHandler) CreateWindow(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreateWindowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	window, err := h.availabilityUsecase.CreateWindow(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidTimeWindow:
			response.Error(w, http.StatusBadRequest, "Invalid time window, use HH:MM with start before end", nil)
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor profile not found")
		default:
			response.InternalServerError(w, "Failed to create availability window")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Availability window created successfully", window)
}

func (h *AvailabilityHandler) DeleteWindow(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	vars := mux.Vars(r)
	windowID, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid window ID", nil)
		return
	}

	if err := h.availabilityUsecase.DeleteWindow(r.Context(), doctorID, windowID); err != nil {
		switch err {
		case usecase.ErrWindowNotFound:
			response.NotFound(w, "Availability window not found")
		default:
			response.InternalServerError(w, "Failed to delete availability window")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability window deleted successfully", nil)
}

func (h *AvailabilityHandler) GetMyWindows(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	windows, err := h.availabilityUsecase.ListWindows(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get availability windows")
		return
	}

	response.Success(w, http.StatusOK, "Availability windows retrieved successfully", windows)
}

// GetDoctorSlots serves the public free-slot lookup for one doctor and
// date: GET /doctors/{id}/slots?date=YYYY-MM-DD
func (h *AvailabilityHandler) GetDoctorSlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.ValidationError(w, map[string]string{"date": "date is required, use YYYY-MM-DD"})
		return
	}

	slots, err := h.availabilityUsecase.GetAvailableSlots(r.Context(), doctorID, date)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.ValidationError(w, map[string]string{"date": "must be a date in YYYY-MM-DD format"})
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get available slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}
