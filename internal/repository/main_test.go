package repository

import (
	"testing"
	"time"

	"doctor-booking/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&entity.Doctor{}, &entity.Appointment{}, &entity.AuditLog{}))
	return db
}

func newDoctor(name, email, specialization, city string) *entity.Doctor {
	return &entity.Doctor{
		Name:           name,
		Email:          email,
		Password:       "$2a$10$hash",
		Specialization: specialization,
		Address:        entity.Address{City: city, Country: "Egypt"},
		IsDoctor:       true,
		Fees:           decimal.NewFromInt(300),
	}
}

func newAppointment(doctorID uuid.UUID, date string, start, end string) *entity.Appointment {
	day, _ := time.Parse(entity.DateLayout, date)
	return &entity.Appointment{
		DoctorID:  doctorID,
		Date:      day,
		StartTime: start,
		EndTime:   end,
	}
}
