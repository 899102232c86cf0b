package mongodb

import (
	"fmt"
	"time"

	"doctor-booking/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names
const (
	DoctorsCollection      = "doctors"
	AppointmentsCollection = "appointments"
	AuditLogsCollection    = "audit_logs"
)

type addressDocument struct {
	City    string `bson:"city"`
	Country string `bson:"country"`
	Region  string `bson:"region"`
}

type doctorDocument struct {
	ID               string                `bson:"_id"`
	Name             string                `bson:"name"`
	Phone            string                `bson:"phone"`
	Email            string                `bson:"email"`
	Password         string                `bson:"password,omitempty"`
	About            string                `bson:"about,omitempty"`
	Specialization   string                `bson:"specialization"`
	Address          addressDocument       `bson:"address"`
	Image            string                `bson:"image,omitempty"`
	Gender           string                `bson:"gender,omitempty"`
	Birthdate        *time.Time            `bson:"birthdate,omitempty"`
	IsDoctor         bool                  `bson:"is_doctor"`
	Rating           float64               `bson:"rating"`
	NumberOfVisitors int                   `bson:"number_of_visitors"`
	Clinic           string                `bson:"clinic,omitempty"`
	Fees             primitive.Decimal128  `bson:"fees"`
	WaitingTime      int                   `bson:"waiting_time"`
	ContactInfo      string                `bson:"contact_info,omitempty"`
	CreatedAt        time.Time             `bson:"created_at,omitempty"`
	UpdatedAt        time.Time             `bson:"updated_at,omitempty"`
	Appointments     []appointmentDocument `bson:"appointments,omitempty"`
}

type appointmentDocument struct {
	ID        string    `bson:"_id"`
	DoctorID  string    `bson:"doctor_id"`
	Date      time.Time `bson:"date"`
	StartTime string    `bson:"start_time"`
	EndTime   string    `bson:"end_time"`
	CreatedAt time.Time `bson:"created_at,omitempty"`
	UpdatedAt time.Time `bson:"updated_at,omitempty"`
}

type auditLogDocument struct {
	ID        string                 `bson:"_id"`
	Action    string                 `bson:"action"`
	Entity    string                 `bson:"entity,omitempty"`
	EntityID  string                 `bson:"entity_id,omitempty"`
	Metadata  map[string]interface{} `bson:"metadata,omitempty"`
	CreatedAt time.Time              `bson:"created_at"`
}

func newDoctorDocument(d *entity.Doctor) (*doctorDocument, error) {
	fees, err := primitive.ParseDecimal128(d.Fees.String())
	if err != nil {
		return nil, fmt.Errorf("convert fees %s: %w", d.Fees, err)
	}

	return &doctorDocument{
		ID:             d.ID.String(),
		Name:           d.Name,
		Phone:          d.Phone,
		Email:          d.Email,
		Password:       d.Password,
		About:          d.About,
		Specialization: d.Specialization,
		Address: addressDocument{
			City:    d.Address.City,
			Country: d.Address.Country,
			Region:  d.Address.Region,
		},
		Image:            d.Image,
		Gender:           d.Gender,
		Birthdate:        d.Birthdate,
		IsDoctor:         d.IsDoctor,
		Rating:           d.Rating,
		NumberOfVisitors: d.NumberOfVisitors,
		Clinic:           d.Clinic,
		Fees:             fees,
		WaitingTime:      d.WaitingTime,
		ContactInfo:      d.ContactInfo,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}, nil
}

func (doc *doctorDocument) toEntity() (*entity.Doctor, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("parse doctor id %q: %w", doc.ID, err)
	}

	fees := decimal.Zero
	if !doc.Fees.IsZero() {
		fees, err = decimal.NewFromString(doc.Fees.String())
		if err != nil {
			return nil, fmt.Errorf("parse fees of doctor %s: %w", doc.ID, err)
		}
	}

	doctor := &entity.Doctor{
		ID:             id,
		Name:           doc.Name,
		Phone:          doc.Phone,
		Email:          doc.Email,
		Password:       doc.Password,
		About:          doc.About,
		Specialization: doc.Specialization,
		Address: entity.Address{
			City:    doc.Address.City,
			Country: doc.Address.Country,
			Region:  doc.Address.Region,
		},
		Image:            doc.Image,
		Gender:           doc.Gender,
		Birthdate:        doc.Birthdate,
		IsDoctor:         doc.IsDoctor,
		Rating:           doc.Rating,
		NumberOfVisitors: doc.NumberOfVisitors,
		Clinic:           doc.Clinic,
		Fees:             fees,
		WaitingTime:      doc.WaitingTime,
		ContactInfo:      doc.ContactInfo,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
	}

	if doc.Appointments != nil {
		doctor.Appointments = make([]entity.Appointment, 0, len(doc.Appointments))
		for i := range doc.Appointments {
			appointment, err := doc.Appointments[i].toEntity()
			if err != nil {
				return nil, err
			}
			doctor.Appointments = append(doctor.Appointments, *appointment)
		}
	}

	return doctor, nil
}

func newAppointmentDocument(a *entity.Appointment) *appointmentDocument {
	return &appointmentDocument{
		ID:        a.ID.String(),
		DoctorID:  a.DoctorID.String(),
		Date:      a.Date,
		StartTime: a.StartTime,
		EndTime:   a.EndTime,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (doc *appointmentDocument) toEntity() (*entity.Appointment, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("parse appointment id %q: %w", doc.ID, err)
	}
	doctorID, err := uuid.Parse(doc.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("parse doctor id %q of appointment %s: %w", doc.DoctorID, doc.ID, err)
	}

	return &entity.Appointment{
		ID:        id,
		DoctorID:  doctorID,
		Date:      doc.Date.UTC(),
		StartTime: doc.StartTime,
		EndTime:   doc.EndTime,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}
