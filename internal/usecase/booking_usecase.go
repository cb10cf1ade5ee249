package usecase

import (
	"context"
	"errors"
	"strings"

	"health-consultancy-api/internal/domain/entity"
	"health-consultancy-api/internal/domain/repository"
	"health-consultancy-api/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	ErrMissingFields       = errors.New("doctor ID, date, and time are required")
	ErrDoctorUnavailable   = errors.New("doctor is not available on the provided date")
	ErrOutsideWorkingHours = errors.New("doctor is not available at the provided time")
	ErrCapacityExceeded    = errors.New("doctor has reached maximum appointments for the day")
)

// BookInput carries a booking request. Zero values mean "not provided".
type BookInput struct {
	DoctorID    int
	Date        string // YYYY-MM-DD
	Time        string // HH:mm
	PatientName string
}

type BookingUsecase interface {
	Book(ctx context.Context, in BookInput) (*entity.Appointment, error)
}

type bookingUsecase struct {
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	locks           *service.DoctorLockService
}

func NewBookingUsecase(
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	locks *service.DoctorLockService,
) BookingUsecase {
	return &bookingUsecase{
		log:             log,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		locks:           locks,
	}
}

// Book validates a request against the doctor's schedule and capacity and records it.
//
// Flow (each step short-circuits):
// 1. Required fields present and well-formed
// 2. Doctor exists
// 3. Doctor works on that weekday (never on Sundays)
// 4. Time strictly inside the working range
// 5. Day capacity not reached
// 6. Insert appointment
//
// Steps 3-6 run under the doctor's lock so concurrent bookings cannot overbook.
func (u *bookingUsecase) Book(ctx context.Context, in BookInput) (*entity.Appointment, error) {
	// Step 1: Required fields
	if in.DoctorID == 0 || strings.TrimSpace(in.Date) == "" || strings.TrimSpace(in.Time) == "" {
		return nil, ErrMissingFields
	}
	date, err := entity.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	at, err := entity.ParseTimeOfDay(in.Time)
	if err != nil {
		return nil, err
	}

	// Step 2: Doctor exists
	doctor, err := u.doctorRepo.FindByID(ctx, in.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", in.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	unlock := u.locks.Lock(doctor.ID)
	defer unlock()

	// Step 3: Working day
	hours, ok := entity.OpenOn(doctor.Schedule, date)
	if !ok {
		return nil, ErrDoctorUnavailable
	}

	// Step 4: Working hours
	if !hours.Contains(at) {
		return nil, ErrOutsideWorkingHours
	}

	// Step 5: Capacity
	booked, err := u.appointmentRepo.CountForDoctorOnDate(ctx, doctor.ID, date)
	if err != nil {
		u.log.Warnf("Failed to count appointments for doctor %d on %s: %+v", doctor.ID, date.Format(entity.DateLayout), err)
		return nil, err
	}
	if !doctor.HasCapacity(booked) {
		return nil, ErrCapacityExceeded
	}

	// Step 6: Insert
	appointment := &entity.Appointment{
		DoctorID:    doctor.ID,
		PatientName: strings.TrimSpace(in.PatientName),
		Date:        date,
		Time:        at,
	}
	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment for doctor %d: %+v", doctor.ID, err)
		return nil, err
	}

	u.log.Infof("Appointment booked: id=%d, doctor=%d, date=%s, time=%s, slot=%d/%d",
		appointment.ID, doctor.ID, date.Format(entity.DateLayout), at, booked+1, doctor.ConsultationSlots)
	return appointment, nil
}
