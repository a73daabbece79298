package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/usecase"
	"clinic-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAvailabilityUsecase struct {
	slots    *dto.SlotsResponse
	slotsErr error
}

func (f *fakeAvailabilityUsecase) CreateWindow(ctx context.Context, doctorID uuid.UUID, req *dto.CreateWindowRequest) (*dto.WindowResponse, error) {
	return &dto.WindowResponse{DoctorID: doctorID, DayOfWeek: req.DayOfWeek, StartTime: req.StartTime, EndTime: req.EndTime}, nil
}

func (f *fakeAvailabilityUsecase) DeleteWindow(ctx context.Context, doctorID uuid.UUID, windowID int) error {
	return nil
}

func (f *fakeAvailabilityUsecase) ListWindows(ctx context.Context, doctorID uuid.UUID) ([]dto.WindowResponse, error) {
	return []dto.WindowResponse{}, nil
}

func (f *fakeAvailabilityUsecase) GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.SlotsResponse, error) {
	if f.slotsErr != nil {
		return nil, f.slotsErr
	}
	return f.slots, nil
}

func newAvailabilityHandler(fake *fakeAvailabilityUsecase) *AvailabilityHandler {
	return NewAvailabilityHandler(fake, validator.NewValidator())
}

func TestGetDoctorSlots(t *testing.T) {
	doctorID := uuid.New()
	fake := &fakeAvailabilityUsecase{slots: &dto.SlotsResponse{
		DoctorID: doctorID,
		Date:     "2026-09-07",
		Slots:    []string{"09:00", "09:30", "14:00"},
	}}
	h := newAvailabilityHandler(fake)

	r := httptest.NewRequest(http.MethodGet, "/doctors/"+doctorID.String()+"/slots?date=2026-09-07", nil)
	r = mux.SetURLVars(r, map[string]string{"id": doctorID.String()})
	w := httptest.NewRecorder()

	h.GetDoctorSlots(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data dto.SlotsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, doctorID, body.Data.DoctorID)
	assert.Equal(t, []string{"09:00", "09:30", "14:00"}, body.Data.Slots)
}

func TestGetDoctorSlotsRequiresDate(t *testing.T) {
	h := newAvailabilityHandler(&fakeAvailabilityUsecase{})
	doctorID := uuid.NewString()

	r := httptest.NewRequest(http.MethodGet, "/doctors/"+doctorID+"/slots", nil)
	r = mux.SetURLVars(r, map[string]string{"id": doctorID})
	w := httptest.NewRecorder()

	h.GetDoctorSlots(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "date")
}

func TestGetDoctorSlotsBadDate(t *testing.T) {
	h := newAvailabilityHandler(&fakeAvailabilityUsecase{slotsErr: usecase.ErrInvalidDateFormat})
	doctorID := uuid.NewString()

	r := httptest.NewRequest(http.MethodGet, "/doctors/"+doctorID+"/slots?date=07-09-2026", nil)
	r = mux.SetURLVars(r, map[string]string{"id": doctorID})
	w := httptest.NewRecorder()

	h.GetDoctorSlots(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDoctorSlotsUnknownDoctor(t *testing.T) {
	h := newAvailabilityHandler(&fakeAvailabilityUsecase{slotsErr: usecase.ErrDoctorNotFound})
	doctorID := uuid.NewString()

	r := httptest.NewRequest(http.MethodGet, "/doctors/"+doctorID+"/slots?date=2026-09-07", nil)
	r = mux.SetURLVars(r, map[string]string{"id": doctorID})
	w := httptest.NewRecorder()

	h.GetDoctorSlots(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetDoctorSlotsBadDoctorID(t *testing.T) {
	h := newAvailabilityHandler(&fakeAvailabilityUsecase{})

	r := httptest.NewRequest(http.MethodGet, "/doctors/abc/slots?date=2026-09-07", nil)
	r = mux.SetURLVars(r, map[string]string{"id": "abc"})
	w := httptest.NewRecorder()

	h.GetDoctorSlots(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
