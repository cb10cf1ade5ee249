package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"health-consultancy-api/internal/domain/entity"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed seed.yaml
var defaultSeed []byte

var (
	ErrDuplicateDoctor      = errors.New("duplicate doctor id")
	ErrInvalidDoctor        = errors.New("invalid doctor")
	ErrInvalidAppointment   = errors.New("invalid appointment")
	ErrDuplicateAppointment = errors.New("duplicate appointment id")
	ErrUnknownDoctor        = errors.New("appointment references unknown doctor")
)

// Data is the startup state of the service
type Data struct {
	Doctors      []entity.Doctor
	Appointments []entity.Appointment
}

type file struct {
	Doctors      []doctorRecord      `yaml:"doctors"`
	Appointments []appointmentRecord `yaml:"appointments"`
}

type doctorRecord struct {
	ID                int               `yaml:"id"`
	Name              string            `yaml:"name"`
	Specialty         string            `yaml:"specialty"`
	Location          string            `yaml:"location"`
	ConsultationSlots int               `yaml:"consultationSlots"`
	Schedule          map[string]string `yaml:"schedule"`
}

type appointmentRecord struct {
	ID          int    `yaml:"id"`
	DoctorID    int    `yaml:"doctorId"`
	PatientName string `yaml:"patientName"`
	Date        string `yaml:"date"`
	Time        string `yaml:"time"`
}

// Load reads the seed at path, or the embedded default seed when path is empty
func Load(path string) (*Data, error) {
	if path == "" {
		return Parse(defaultSeed)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML seed document
func Parse(raw []byte) (*Data, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	data := &Data{
		Doctors:      make([]entity.Doctor, 0, len(f.Doctors)),
		Appointments: make([]entity.Appointment, 0, len(f.Appointments)),
	}

	doctorIDs := make(map[int]struct{}, len(f.Doctors))
	for _, rec := range f.Doctors {
		if rec.ID <= 0 {
			return nil, fmt.Errorf("%w: id must be positive, got %d", ErrInvalidDoctor, rec.ID)
		}
		if _, exists := doctorIDs[rec.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateDoctor, rec.ID)
		}
		if rec.ConsultationSlots <= 0 {
			return nil, fmt.Errorf("%w %d: consultationSlots must be positive", ErrInvalidDoctor, rec.ID)
		}
		schedule, err := entity.ParseWeeklySchedule(rec.Schedule)
		if err != nil {
			return nil, fmt.Errorf("doctor %d schedule: %w", rec.ID, err)
		}

		doctorIDs[rec.ID] = struct{}{}
		data.Doctors = append(data.Doctors, entity.Doctor{
			ID:                rec.ID,
			Name:              rec.Name,
			Specialty:         rec.Specialty,
			Location:          rec.Location,
			ConsultationSlots: rec.ConsultationSlots,
			Schedule:          schedule,
		})
	}

	appointmentIDs := make(map[int]struct{}, len(f.Appointments))
	for _, rec := range f.Appointments {
		if rec.ID <= 0 {
			return nil, fmt.Errorf("%w: id must be positive, got %d", ErrInvalidAppointment, rec.ID)
		}
		if _, exists := appointmentIDs[rec.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateAppointment, rec.ID)
		}
		if _, ok := doctorIDs[rec.DoctorID]; !ok {
			return nil, fmt.Errorf("%w: appointment %d, doctor %d", ErrUnknownDoctor, rec.ID, rec.DoctorID)
		}
		date, err := entity.ParseDate(rec.Date)
		if err != nil {
			return nil, fmt.Errorf("appointment %d: %w", rec.ID, err)
		}
		at, err := entity.ParseTimeOfDay(rec.Time)
		if err != nil {
			return nil, fmt.Errorf("appointment %d: %w", rec.ID, err)
		}

		appointmentIDs[rec.ID] = struct{}{}
		data.Appointments = append(data.Appointments, entity.Appointment{
			ID:          rec.ID,
			DoctorID:    rec.DoctorID,
			PatientName: rec.PatientName,
			Date:        date,
			Time:        at,
		})
	}

	return data, nil
}

// Insert writes the seed into db in one transaction. Rows whose id already exists are kept as they are.
func (d *Data) Insert(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(d.Doctors) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&d.Doctors).Error; err != nil {
				return fmt.Errorf("insert doctors: %w", err)
			}
		}
		if len(d.Appointments) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&d.Appointments).Error; err != nil {
				return fmt.Errorf("insert appointments: %w", err)
			}
		}
		return nil
	})
}
