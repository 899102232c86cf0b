package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Address is the doctor's practice location, stored inline with the doctor
type Address struct {
	City    string `gorm:"type:varchar(100);index" json:"city"`
	Country string `gorm:"type:varchar(100)" json:"country"`
	Region  string `gorm:"type:varchar(100)" json:"region"`
}

// Doctor represents a registered doctor and their public profile
type Doctor struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Phone            string          `gorm:"type:varchar(20)" json:"phone"`
	Email            string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password         string          `gorm:"type:text;not null" json:"-"`
	About            string          `gorm:"type:text" json:"about,omitempty"`
	Specialization   string          `gorm:"type:varchar(100);index" json:"specialization"`
	Address          Address         `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Image            string          `gorm:"type:text" json:"image,omitempty"`
	Gender           string          `gorm:"type:varchar(10)" json:"gender,omitempty"`
	Birthdate        *time.Time      `gorm:"type:date" json:"birthdate,omitempty"`
	IsDoctor         bool            `gorm:"not null" json:"is_doctor"`
	Rating           float64         `gorm:"not null;default:0" json:"rating"`
	NumberOfVisitors int             `gorm:"not null;default:0" json:"number_of_visitors"`
	Clinic           string          `gorm:"type:varchar(255)" json:"clinic,omitempty"`
	Fees             decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"fees"`
	WaitingTime      int             `gorm:"not null;default:0" json:"waiting_time"`
	ContactInfo      string          `gorm:"type:text" json:"contact_info,omitempty"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Populated by the search join only, never persisted with the doctor
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// BeforeCreate assigns an identifier when the caller did not provide one
func (d *Doctor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
