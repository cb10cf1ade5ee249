package entity

// Doctor is a bookable practitioner. Doctors are seeded at startup and never change afterwards.
type Doctor struct {
	ID                int            `gorm:"primaryKey;autoIncrement:false"`
	Name              string         `gorm:"type:text;not null"`
	Specialty         string         `gorm:"type:text"`
	Location          string         `gorm:"type:text"`
	ConsultationSlots int            `gorm:"not null"` // maximum appointments per calendar day
	Schedule          WeeklySchedule `gorm:"type:text;not null"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// HasCapacity reports whether another appointment fits next to booked ones on the same day
func (d *Doctor) HasCapacity(booked int) bool {
	return booked < d.ConsultationSlots
}
