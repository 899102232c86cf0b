package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type AddressRequest struct {
	City    string `json:"city" validate:"omitempty,max=100"`
	Country string `json:"country" validate:"omitempty,max=100"`
	Region  string `json:"region" validate:"omitempty,max=100"`
}

type CreateDoctorRequest struct {
	Name           string          `json:"name" validate:"required,min=2"`
	Phone          string          `json:"phone" validate:"omitempty,max=20"`
	Email          string          `json:"email" validate:"required,email"`
	Password       string          `json:"password" validate:"required,min=6,max=72"`
	About          string          `json:"about" validate:"omitempty"`
	Specialization string          `json:"specialization" validate:"omitempty,max=100"`
	Address        AddressRequest  `json:"address"`
	Image          string          `json:"image" validate:"omitempty"`
	Gender         string          `json:"gender" validate:"omitempty,oneof=male female"`
	Birthdate      string          `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	Clinic         string          `json:"clinic" validate:"omitempty,max=255"`
	Fees           decimal.Decimal `json:"fees"`
	WaitingTime    int             `json:"waiting_time" validate:"gte=0"`
	ContactInfo    string          `json:"contact_info" validate:"omitempty"`
}

// UpdateDoctorRequest is a partial update: nil fields are left untouched.
// Identifier and password are not part of it.
type UpdateDoctorRequest struct {
	Name             *string          `json:"name" validate:"omitempty,min=2"`
	Phone            *string          `json:"phone" validate:"omitempty,max=20"`
	Email            *string          `json:"email" validate:"omitempty,email"`
	About            *string          `json:"about" validate:"omitempty"`
	Specialization   *string          `json:"specialization" validate:"omitempty,max=100"`
	Address          *AddressRequest  `json:"address" validate:"omitempty"`
	Image            *string          `json:"image" validate:"omitempty"`
	Gender           *string          `json:"gender" validate:"omitempty,oneof=male female"`
	Birthdate        *string          `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	IsDoctor         *bool            `json:"is_doctor" validate:"omitempty"`
	Rating           *float64         `json:"rating" validate:"omitempty,gte=0,lte=5"`
	NumberOfVisitors *int             `json:"number_of_visitors" validate:"omitempty,gte=0"`
	Clinic           *string          `json:"clinic" validate:"omitempty,max=255"`
	Fees             *decimal.Decimal `json:"fees" validate:"omitempty"`
	WaitingTime      *int             `json:"waiting_time" validate:"omitempty,gte=0"`
	ContactInfo      *string          `json:"contact_info" validate:"omitempty"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6,max=72"`
}

// Response DTOs

type AddressResponse struct {
	City    string `json:"city"`
	Country string `json:"country"`
	Region  string `json:"region"`
}

type DoctorResponse struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Phone            string          `json:"phone"`
	Email            string          `json:"email"`
	About            string          `json:"about,omitempty"`
	Specialization   string          `json:"specialization"`
	Address          AddressResponse `json:"address"`
	Image            string          `json:"image"`
	Gender           string          `json:"gender"`
	Birthdate        *string         `json:"birthdate"`
	IsDoctor         bool            `json:"is_doctor"`
	Rating           float64         `json:"rating"`
	NumberOfVisitors int             `json:"number_of_visitors"`
	Clinic           string          `json:"clinic"`
	Fees             decimal.Decimal `json:"fees"`
	WaitingTime      int             `json:"waiting_time"`
	ContactInfo      string          `json:"contact_info"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

// DoctorSearchResult is the public projection of a doctor returned by search.
// It deliberately has no password field.
type DoctorSearchResult struct {
	ID               uuid.UUID             `json:"id"`
	Name             string                `json:"name"`
	Phone            string                `json:"phone"`
	Email            string                `json:"email"`
	Address          AddressResponse       `json:"address"`
	Image            string                `json:"image"`
	Gender           string                `json:"gender"`
	Birthdate        *string               `json:"birthdate"`
	IsDoctor         bool                  `json:"is_doctor"`
	Specialization   string                `json:"specialization"`
	Rating           float64               `json:"rating"`
	NumberOfVisitors int                   `json:"number_of_visitors"`
	Clinic           string                `json:"clinic"`
	Fees             decimal.Decimal       `json:"fees"`
	WaitingTime      int                   `json:"waiting_time"`
	ContactInfo      string                `json:"contact_info"`
	Appointments     []AppointmentResponse `json:"appointments"`
}
