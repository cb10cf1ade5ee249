package dto

// Response DTOs

type DoctorSummaryResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Location  string `json:"location"`
}

type DoctorResponse struct {
	ID                int               `json:"id"`
	Name              string            `json:"name"`
	Specialty         string            `json:"specialty"`
	Location          string            `json:"location"`
	ConsultationSlots int               `json:"consultationSlots"`
	Schedule          map[string]string `json:"schedule"`
}
