package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"health-consultancy-api/internal/converter"
	"health-consultancy-api/internal/delivery/dto"
	"health-consultancy-api/internal/domain/entity"
	"health-consultancy-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrDateAndTimeRequired = errors.New("date and time are required")
)

type DoctorUsecase interface {
	ListDoctors(ctx context.Context) ([]dto.DoctorSummaryResponse, error)
	GetDoctor(ctx context.Context, doctorID int) (*dto.DoctorResponse, error)
	CheckAvailability(ctx context.Context, doctorID int, date, at string) (*dto.AvailabilityResponse, error)
	ListAppointments(ctx context.Context, doctorID int, date string) ([]dto.AppointmentResponse, error)
}

type doctorUsecase struct {
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
}

func NewDoctorUsecase(
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
) DoctorUsecase {
	return &doctorUsecase{
		log:             log,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
	}
}

func (u *doctorUsecase) ListDoctors(ctx context.Context) ([]dto.DoctorSummaryResponse, error) {
	doctors, err := u.doctorRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}
	return converter.DoctorsToSummaries(doctors), nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID int) (*dto.DoctorResponse, error) {
	doctor, err := u.findDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return converter.DoctorToResponse(doctor), nil
}

// CheckAvailability reports whether the doctor works at the given date and time.
// It ignores existing bookings; capacity is only checked when booking.
func (u *doctorUsecase) CheckAvailability(ctx context.Context, doctorID int, date, at string) (*dto.AvailabilityResponse, error) {
	doctor, err := u.findDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(date) == "" || strings.TrimSpace(at) == "" {
		return nil, ErrDateAndTimeRequired
	}
	day, err := entity.ParseDate(date)
	if err != nil {
		return nil, err
	}
	tod, err := entity.ParseTimeOfDay(at)
	if err != nil {
		return nil, err
	}

	if entity.IsOpen(doctor.Schedule, day, tod) {
		return &dto.AvailabilityResponse{Availability: dto.AvailabilityAvailable}, nil
	}
	return &dto.AvailabilityResponse{Availability: dto.AvailabilityNotAvailable}, nil
}

// ListAppointments returns the doctor's appointments, optionally limited to one date
func (u *doctorUsecase) ListAppointments(ctx context.Context, doctorID int, date string) ([]dto.AppointmentResponse, error) {
	doctor, err := u.findDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	var day *time.Time
	if strings.TrimSpace(date) != "" {
		d, err := entity.ParseDate(date)
		if err != nil {
			return nil, err
		}
		day = &d
	}

	appointments, err := u.appointmentRepo.FindByDoctorID(ctx, doctor.ID, day)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %d: %+v", doctor.ID, err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}

func (u *doctorUsecase) findDoctor(ctx context.Context, doctorID int) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}
