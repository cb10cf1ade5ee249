package repository

import (
	"context"
	"time"

	"health-consultancy-api/internal/domain/entity"
	domainRepo "health-consultancy-api/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	appointment.Date = calendarDate(appointment.Date)
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) CountForDoctorOnDate(ctx context.Context, doctorID int, date time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ?", doctorID, calendarDate(date)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// FindByDoctorID lists a doctor's appointments ordered by date, time and ID.
// A nil date returns every date.
func (r *appointmentRepository) FindByDoctorID(ctx context.Context, doctorID int, date *time.Time) ([]entity.Appointment, error) {
	query := r.db.WithContext(ctx).Where("doctor_id = ?", doctorID)
	if date != nil {
		query = query.Where("appointment_date = ?", calendarDate(*date))
	}

	var appointments []entity.Appointment
	err := query.Order("appointment_date ASC, time_of_day ASC, id ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	if appointments == nil {
		appointments = []entity.Appointment{}
	}
	return appointments, nil
}

// calendarDate drops the clock so stored dates compare by calendar day
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
