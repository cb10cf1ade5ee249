package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"health-consultancy-api/internal/converter"
	"health-consultancy-api/internal/delivery/dto"
	"health-consultancy-api/internal/domain/entity"
	"health-consultancy-api/internal/usecase"
	"health-consultancy-api/pkg/response"
	"health-consultancy-api/pkg/validator"
)

const (
	msgBooked              = "Appointment booked successfully"
	msgInvalidBody         = "Invalid request body"
	msgMissingFields       = "Doctor ID, date, and time are required"
	msgDoctorUnavailable   = "Doctor is not available on Sundays or the provided date"
	msgOutsideWorkingHours = "Doctor is not available at the provided time"
	msgCapacityExceeded    = "Doctor has reached maximum appointments for the day"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

func (h *BookingHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, msgInvalidBody)
		return
	}

	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, validationMessage(h.validator, err), h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.bookingUsecase.Book(r.Context(), usecase.BookInput{
		DoctorID:    int(req.DoctorID),
		Date:        req.Date,
		Time:        req.Time,
		PatientName: req.PatientName,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingFields):
			response.BadRequest(w, msgMissingFields)
		case errors.Is(err, entity.ErrInvalidDate), errors.Is(err, entity.ErrInvalidTime):
			response.BadRequest(w, msgInvalidDateOrTime)
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, msgDoctorNotFound)
		case errors.Is(err, usecase.ErrDoctorUnavailable):
			response.BadRequest(w, msgDoctorUnavailable)
		case errors.Is(err, usecase.ErrOutsideWorkingHours):
			response.BadRequest(w, msgOutsideWorkingHours)
		case errors.Is(err, usecase.ErrCapacityExceeded):
			response.BadRequest(w, msgCapacityExceeded)
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.Success(w, dto.BookAppointmentResponse{
		Message:     msgBooked,
		Appointment: converter.AppointmentToResponse(appointment),
	})
}

// validationMessage picks the client message for the first failure class found
func validationMessage(v *validator.CustomValidator, err error) string {
	switch {
	case v.HasTag(err, "required"):
		return msgMissingFields
	case v.HasTag(err, "datetime"):
		return msgInvalidDateOrTime
	default:
		return msgInvalidBody
	}
}
