package converter

import (
	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/domain/entity"
)

// WindowToResponse converts an AvailabilityWindow entity to WindowResponse DTO
func WindowToResponse(window *entity.AvailabilityWindow) *dto.WindowResponse {
	if window == nil {
		return nil
	}

	return &dto.WindowResponse{
		ID:        window.ID,
		DoctorID:  window.DoctorID,
		DayOfWeek: window.DayOfWeek,
		StartTime: window.StartTime,
		EndTime:   window.EndTime,
		CreatedAt: window.CreatedAt,
		UpdatedAt: window.UpdatedAt,
	}
}

// WindowsToResponses converts a slice of AvailabilityWindow entities to DTOs
func WindowsToResponses(windows []entity.AvailabilityWindow) []dto.WindowResponse {
	responses := make([]dto.WindowResponse, len(windows))
	for i, window := range windows {
		resp := WindowToResponse(&window)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
