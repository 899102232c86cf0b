package mongodb

import (
	"testing"
	"time"

	"doctor-booking/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDoctorDocument_KeepsFeesAndAppointments(t *testing.T) {
	doctor := &entity.Doctor{
		ID:             uuid.New(),
		Name:           "Anna Lee",
		Email:          "anna@example.com",
		Specialization: "Cardiology",
		Address:        entity.Address{City: "Cairo"},
		Fees:           decimal.RequireFromString("250.50"),
	}

	doc, err := newDoctorDocument(doctor)
	require.NoError(t, err)
	assert.Equal(t, doctor.ID.String(), doc.ID)
	assert.Equal(t, "Cairo", doc.Address.City)

	day := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	doc.Appointments = []appointmentDocument{{
		ID:        uuid.NewString(),
		DoctorID:  doc.ID,
		Date:      day,
		StartTime: "09:00",
		EndTime:   "09:30",
	}}

	back, err := doc.toEntity()
	require.NoError(t, err)
	assert.Equal(t, doctor.ID, back.ID)
	assert.True(t, back.Fees.Equal(doctor.Fees), back.Fees.String())
	require.Len(t, back.Appointments, 1)
	assert.Equal(t, doctor.ID, back.Appointments[0].DoctorID)
	assert.Equal(t, day, back.Appointments[0].Date)
}

func TestDoctorDocument_EmptyLookupIsEmptySlice(t *testing.T) {
	doc := &doctorDocument{ID: uuid.NewString(), Appointments: []appointmentDocument{}, Fees: primitive.Decimal128{}}

	doctor, err := doc.toEntity()
	require.NoError(t, err)
	assert.NotNil(t, doctor.Appointments)
	assert.Empty(t, doctor.Appointments)
	assert.True(t, doctor.Fees.IsZero())
}

func TestDoctorDocument_InvalidID(t *testing.T) {
	_, err := (&doctorDocument{ID: "not-a-uuid"}).toEntity()
	assert.Error(t, err)
}
