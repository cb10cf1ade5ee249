package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidDoctorID = errors.New("doctorId must be an integer")

// FlexibleID accepts a JSON number or a numeric string ("1" and 1 are the same doctor)
type FlexibleID int

func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = 0
		return nil
	}

	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*id = 0
			return nil
		}
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return ErrInvalidDoctorID
	}
	*id = FlexibleID(n)
	return nil
}

// Request DTOs

type BookAppointmentRequest struct {
	DoctorID    FlexibleID `json:"doctorId" validate:"required"`
	Date        string     `json:"date" validate:"required,datetime=2006-01-02"` // Format: YYYY-MM-DD
	Time        string     `json:"time" validate:"required,datetime=15:04"` // Format: HH:mm
	PatientName string     `json:"patientName"`
}

// Response DTOs

type AppointmentResponse struct {
	ID          int    `json:"id"`
	DoctorID    int    `json:"doctorId"`
	PatientName string `json:"patientName,omitempty"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

type BookAppointmentResponse struct {
	Message     string               `json:"message"`
	Appointment *AppointmentResponse `json:"appointment,omitempty"`
}
