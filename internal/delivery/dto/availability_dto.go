package dto

const (
	AvailabilityAvailable    = "Available"
	AvailabilityNotAvailable = "Not Available"
)

// Response DTOs

type AvailabilityResponse struct {
	Availability string `json:"availability"`
}
