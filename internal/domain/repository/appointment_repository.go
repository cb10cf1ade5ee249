package repository

import (
	"context"
	"time"

	"health-consultancy-api/internal/domain/entity"
)

// AppointmentRepository is the booking ledger.
// Create does not check capacity or schedules; callers serialize count+create per doctor.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	CountForDoctorOnDate(ctx context.Context, doctorID int, date time.Time) (int, error)
	FindByDoctorID(ctx context.Context, doctorID int, date *time.Time) ([]entity.Appointment, error)
}
