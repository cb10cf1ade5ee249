package converter

import (
	"health-consultancy-api/internal/delivery/dto"
	"health-consultancy-api/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to the full DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:                doctor.ID,
		Name:              doctor.Name,
		Specialty:         doctor.Specialty,
		Location:          doctor.Location,
		ConsultationSlots: doctor.ConsultationSlots,
		Schedule:          doctor.Schedule.Strings(),
	}
}

// DoctorsToSummaries converts doctors to list entries without schedule and capacity
func DoctorsToSummaries(doctors []entity.Doctor) []dto.DoctorSummaryResponse {
	responses := make([]dto.DoctorSummaryResponse, len(doctors))
	for i, doctor := range doctors {
		responses[i] = dto.DoctorSummaryResponse{
			ID:        doctor.ID,
			Name:      doctor.Name,
			Specialty: doctor.Specialty,
			Location:  doctor.Location,
		}
	}
	return responses
}
