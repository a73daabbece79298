package converter

import (
	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/domain/entity"
)

// DoctorProfileToResponse converts a DoctorProfile entity (with User
// preloaded) to DoctorResponse DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		UserID:          profile.UserID,
		FirstName:       profile.User.FirstName,
		LastName:        profile.User.LastName,
		Email:           profile.User.Email,
		LicenseNumber:   profile.LicenseNumber,
		Specialization:  string(profile.Specialization),
		Biography:       profile.Biography,
		ConsultationFee: profile.ConsultationFee.StringFixed(2),
		CreatedAt:       profile.CreatedAt,
		UpdatedAt:       profile.UpdatedAt,
	}

	if profile.User.IsVerified != nil {
		response.IsVerified = *profile.User.IsVerified
	}

	return response
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities to DTOs
func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i, profile := range profiles {
		resp := DoctorProfileToResponse(&profile)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
