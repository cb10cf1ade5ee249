package handler

import (
	"errors"
	"net/http"
	"strconv"

	"health-consultancy-api/internal/domain/entity"
	"health-consultancy-api/internal/usecase"
	"health-consultancy-api/pkg/response"

	"github.com/gorilla/mux"
)

const (
	msgDoctorNotFound      = "Doctor not found"
	msgDateAndTimeRequired = "Date and time are required"
	msgInvalidDateOrTime   = "Invalid date or time format, use YYYY-MM-DD and HH:mm"
	msgInvalidDate         = "Invalid date format, use YYYY-MM-DD"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
	}
}

func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.ListDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "")
		return
	}

	response.Success(w, doctors)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := doctorIDFromPath(r)
	if !ok {
		response.NotFound(w, msgDoctorNotFound)
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), doctorID)
	if err != nil {
		if errors.Is(err, usecase.ErrDoctorNotFound) {
			response.NotFound(w, msgDoctorNotFound)
			return
		}
		response.InternalServerError(w, "")
		return
	}

	response.Success(w, doctor)
}

func (h *DoctorHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := doctorIDFromPath(r)
	if !ok {
		response.NotFound(w, msgDoctorNotFound)
		return
	}

	query := r.URL.Query()
	availability, err := h.doctorUsecase.CheckAvailability(r.Context(), doctorID, query.Get("date"), query.Get("time"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, msgDoctorNotFound)
		case errors.Is(err, usecase.ErrDateAndTimeRequired):
			response.BadRequest(w, msgDateAndTimeRequired)
		case errors.Is(err, entity.ErrInvalidDate), errors.Is(err, entity.ErrInvalidTime):
			response.BadRequest(w, msgInvalidDateOrTime)
		default:
			response.InternalServerError(w, "")
		}
		return
	}

	response.Success(w, availability)
}

func (h *DoctorHandler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := doctorIDFromPath(r)
	if !ok {
		response.NotFound(w, msgDoctorNotFound)
		return
	}

	appointments, err := h.doctorUsecase.ListAppointments(r.Context(), doctorID, r.URL.Query().Get("date"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, msgDoctorNotFound)
		case errors.Is(err, entity.ErrInvalidDate):
			response.BadRequest(w, msgInvalidDate)
		default:
			response.InternalServerError(w, "")
		}
		return
	}

	response.Success(w, appointments)
}

// doctorIDFromPath reads the {id} path variable. Non-numeric IDs match no doctor.
func doctorIDFromPath(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, false
	}
	return id, true
}
