package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/delivery/http/middleware"
	"clinic-booking/internal/domain/entity"
	"clinic-booking/internal/usecase"
	"clinic-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAppointmentUsecase records the inputs it receives and replays
// canned results, so handler tests exercise parsing and error mapping
// without a database.
type fakeAppointmentUsecase struct {
	bookErr    error
	cancelErr  error
	statusErr  error
	listFilter *entity.AppointmentFilter
	listResult []dto.AppointmentResponse
	listTotal  int64
	listErr    error
}

func (f *fakeAppointmentUsecase) Book(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	return &dto.AppointmentResponse{ID: uuid.New(), Status: "scheduled"}, nil
}

func (f *fakeAppointmentUsecase) Cancel(ctx context.Context, callerID uuid.UUID, roleID int, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	return &dto.AppointmentResponse{ID: appointmentID, Status: "cancelled"}, nil
}

func (f *fakeAppointmentUsecase) UpdateStatus(ctx context.Context, doctorID uuid.UUID, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return &dto.AppointmentResponse{ID: appointmentID, Status: req.Status}, nil
}

func (f *fakeAppointmentUsecase) UpdateNotes(ctx context.Context, doctorID uuid.UUID, appointmentID uuid.UUID, req *dto.UpdateAppointmentNotesRequest) (*dto.AppointmentResponse, error) {
	return &dto.AppointmentResponse{ID: appointmentID, Notes: req.Notes}, nil
}

func (f *fakeAppointmentUsecase) GetByID(ctx context.Context, callerID uuid.UUID, roleID int, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	return &dto.AppointmentResponse{ID: appointmentID}, nil
}

func (f *fakeAppointmentUsecase) List(ctx context.Context, filter *entity.AppointmentFilter) ([]dto.AppointmentResponse, int64, error) {
	f.listFilter = filter
	return f.listResult, f.listTotal, f.listErr
}

func authedRequest(r *http.Request, userID uuid.UUID, roleID int) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserIDKey, userID)
	ctx = context.WithValue(ctx, middleware.RoleIDKey, roleID)
	return r.WithContext(ctx)
}

func newAppointmentHandler(fake *fakeAppointmentUsecase) *AppointmentHandler {
	return NewAppointmentHandler(fake, validator.NewValidator())
}

func TestListForPatientMapsFilter(t *testing.T) {
	fake := &fakeAppointmentUsecase{listResult: []dto.AppointmentResponse{}, listTotal: 42}
	h := newAppointmentHandler(fake)
	patientID := uuid.New()

	r := httptest.NewRequest(http.MethodGet,
		"/patient/appointments?status=scheduled&type=consultation&search=jane+doe&startDate=2026-09-01&endDate=2026-09-30&page=3&pageSize=20&sortBy=created_at&sortOrder=asc", nil)
	r = authedRequest(r, patientID, entity.RoleIDPatient)
	w := httptest.NewRecorder()

	h.ListForPatient(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, fake.listFilter)

	filter := fake.listFilter
	require.NotNil(t, filter.PatientID)
	assert.Equal(t, patientID, *filter.PatientID)
	assert.Nil(t, filter.DoctorID)
	assert.Equal(t, entity.AppointmentStatusScheduled, filter.Status)
	assert.Equal(t, entity.AppointmentTypeConsultation, filter.Type)
	assert.Equal(t, []string{"jane", "doe"}, filter.NameTerms)
	require.NotNil(t, filter.From)
	require.NotNil(t, filter.To)
	assert.Equal(t, 40, filter.Page.Offset)
	assert.Equal(t, 20, filter.Page.Limit)
	assert.Equal(t, "created_at", filter.Page.SortBy)
	assert.Equal(t, "asc", filter.Page.SortOrder)

	var body struct {
		Meta struct {
			Page       int   `json:"page"`
			Limit      int   `json:"limit"`
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Meta.Page)
	assert.Equal(t, int64(42), body.Meta.Total)
	assert.Equal(t, 3, body.Meta.TotalPages)
}

func TestListForDoctorScopesToDoctor(t *testing.T) {
	fake := &fakeAppointmentUsecase{}
	h := newAppointmentHandler(fake)
	doctorID := uuid.New()

	r := httptest.NewRequest(http.MethodGet, "/doctor/appointments", nil)
	r = authedRequest(r, doctorID, entity.RoleIDDoctor)
	w := httptest.NewRecorder()

	h.ListForDoctor(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, fake.listFilter.DoctorID)
	assert.Equal(t, doctorID, *fake.listFilter.DoctorID)
	assert.Nil(t, fake.listFilter.PatientID)
}

func TestListAdminIsUnscoped(t *testing.T) {
	fake := &fakeAppointmentUsecase{}
	h := newAppointmentHandler(fake)

	r := httptest.NewRequest(http.MethodGet, "/admin/appointments", nil)
	r = authedRequest(r, uuid.New(), entity.RoleIDAdmin)
	w := httptest.NewRecorder()

	h.ListAdmin(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, fake.listFilter.DoctorID)
	assert.Nil(t, fake.listFilter.PatientID)
}

func TestListRejectsOversizedPage(t *testing.T) {
	fake := &fakeAppointmentUsecase{}
	h := newAppointmentHandler(fake)

	r := httptest.NewRequest(http.MethodGet, "/patient/appointments?pageSize=101", nil)
	r = authedRequest(r, uuid.New(), entity.RoleIDPatient)
	w := httptest.NewRecorder()

	h.ListForPatient(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, fake.listFilter)
	assert.Contains(t, w.Body.String(), "pageSize")
}

func TestListRejectsUnknownStatus(t *testing.T) {
	fake := &fakeAppointmentUsecase{}
	h := newAppointmentHandler(fake)

	r := httptest.NewRequest(http.MethodGet, "/patient/appointments?status=pending", nil)
	r = authedRequest(r, uuid.New(), entity.RoleIDPatient)
	w := httptest.NewRecorder()

	h.ListForPatient(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "status")
}

func TestListUnknownSortFallsBack(t *testing.T) {
	fake := &fakeAppointmentUsecase{}
	h := newAppointmentHandler(fake)

	r := httptest.NewRequest(http.MethodGet, "/patient/appointments?sortBy=price", nil)
	r = authedRequest(r, uuid.New(), entity.RoleIDPatient)
	w := httptest.NewRecorder()

	h.ListForPatient(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "scheduled_for", fake.listFilter.Page.SortBy)
	assert.Equal(t, "desc", fake.listFilter.Page.SortOrder)
}

func bookBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(dto.BookAppointmentRequest{
		DoctorID:     uuid.New(),
		ScheduledFor: time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		Type:         "consultation",
	})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestBookErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"slot taken", usecase.ErrSlotTaken, http.StatusConflict},
		{"slot not available", usecase.ErrSlotNotAvailable, http.StatusBadRequest},
		{"time in past", usecase.ErrTimeInPast, http.StatusBadRequest},
		{"doctor not found", usecase.ErrDoctorNotFound, http.StatusNotFound},
		{"invalid type", usecase.ErrInvalidAppointmentType, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newAppointmentHandler(&fakeAppointmentUsecase{bookErr: tt.err})

			r := httptest.NewRequest(http.MethodPost, "/patient/appointments", bookBody(t))
			r = authedRequest(r, uuid.New(), entity.RoleIDPatient)
			w := httptest.NewRecorder()

			h.Book(w, r)

			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestBookSuccess(t *testing.T) {
	h := newAppointmentHandler(&fakeAppointmentUsecase{})

	r := httptest.NewRequest(http.MethodPost, "/patient/appointments", bookBody(t))
	r = authedRequest(r, uuid.New(), entity.RoleIDPatient)
	w := httptest.NewRecorder()

	h.Book(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestBookRejectsMissingFields(t *testing.T) {
	h := newAppointmentHandler(&fakeAppointmentUsecase{})

	r := httptest.NewRequest(http.MethodPost, "/patient/appointments", bytes.NewBufferString(`{}`))
	r = authedRequest(r, uuid.New(), entity.RoleIDPatient)
	w := httptest.NewRecorder()

	h.Book(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookRequiresAuth(t *testing.T) {
	h := newAppointmentHandler(&fakeAppointmentUsecase{})

	r := httptest.NewRequest(http.MethodPost, "/patient/appointments", bookBody(t))
	w := httptest.NewRecorder()

	h.Book(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCancelErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", usecase.ErrAppointmentNotFound, http.StatusNotFound},
		{"already terminal", usecase.ErrInvalidTransition, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newAppointmentHandler(&fakeAppointmentUsecase{cancelErr: tt.err})

			r := httptest.NewRequest(http.MethodPost, "/patient/appointments/"+uuid.NewString()+"/cancel", nil)
			r = mux.SetURLVars(r, map[string]string{"id": uuid.NewString()})
			r = authedRequest(r, uuid.New(), entity.RoleIDPatient)
			w := httptest.NewRecorder()

			h.Cancel(w, r)

			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

func TestCancelRejectsBadID(t *testing.T) {
	h := newAppointmentHandler(&fakeAppointmentUsecase{})

	r := httptest.NewRequest(http.MethodPost, "/patient/appointments/not-a-uuid/cancel", nil)
	r = mux.SetURLVars(r, map[string]string{"id": "not-a-uuid"})
	r = authedRequest(r, uuid.New(), entity.RoleIDPatient)
	w := httptest.NewRecorder()

	h.Cancel(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	h := newAppointmentHandler(&fakeAppointmentUsecase{statusErr: usecase.ErrInvalidTransition})

	body := bytes.NewBufferString(`{"status":"done"}`)
	r := httptest.NewRequest(http.MethodPatch, "/doctor/appointments/"+uuid.NewString()+"/status", body)
	r = mux.SetURLVars(r, map[string]string{"id": uuid.NewString()})
	r = authedRequest(r, uuid.New(), entity.RoleIDDoctor)
	w := httptest.NewRecorder()

	h.UpdateStatus(w, r)

	assert.Equal(t, http.StatusConflict, w.Code)
}
