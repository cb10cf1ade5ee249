package entity

import "time"

// Appointment is an accepted booking. Appointments are append-only.
type Appointment struct {
	ID          int       `gorm:"primaryKey;autoIncrement"`
	DoctorID    int       `gorm:"not null;index:idx_appointments_doctor_date"`
	PatientName string    `gorm:"type:text"`
	Date        time.Time `gorm:"column:appointment_date;type:date;not null;index:idx_appointments_doctor_date"` // calendar date, midnight UTC
	Time        TimeOfDay `gorm:"column:time_of_day;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Appointment) TableName() string {
	return "appointments"
}
