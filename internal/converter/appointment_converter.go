package converter

import (
	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:           appointment.ID,
		ScheduledFor: appointment.ScheduledFor,
		Type:         string(appointment.Type),
		Status:       string(appointment.Status),
		Price:        appointment.Price.StringFixed(2),
		Notes:        appointment.Notes,
		CreatedAt:    appointment.CreatedAt,
		UpdatedAt:    appointment.UpdatedAt,
	}

	// Participant blocks are filled only when the profile was preloaded
	if appointment.Doctor.User.ID != uuid.Nil {
		response.Doctor = participantFromUser(&appointment.Doctor.User)
	}
	if appointment.Patient.User.ID != uuid.Nil {
		response.Patient = participantFromUser(&appointment.Patient.User)
	}

	return response
}

func participantFromUser(user *entity.User) *dto.ParticipantInfo {
	return &dto.ParticipantInfo{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
