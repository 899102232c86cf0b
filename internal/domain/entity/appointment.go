package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Date and time layouts used for appointment slots
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Appointment is an availability slot published by a doctor
type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Date      time.Time `gorm:"type:date;not null;index" json:"date"`
	StartTime string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   string    `gorm:"type:varchar(5);not null" json:"end_time"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AppointmentFilter narrows appointment listings. Zero values mean no constraint.
type AppointmentFilter struct {
	DoctorID uuid.UUID
	Date     *time.Time
}
