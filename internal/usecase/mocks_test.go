package usecase

import (
	"context"
	"io"

	"doctor-booking/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type mockDoctorRepository struct {
	mock.Mock
}

func (m *mockDoctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *mockDoctorRepository) FindAll(ctx context.Context) ([]entity.Doctor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Doctor), args.Error(1)
}

func (m *mockDoctorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Doctor), args.Error(1)
}

func (m *mockDoctorRepository) FindByEmail(ctx context.Context, email string) (*entity.Doctor, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Doctor), args.Error(1)
}

func (m *mockDoctorRepository) Update(ctx context.Context, doctor *entity.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *mockDoctorRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) (int64, error) {
	args := m.Called(ctx, id, hashedPassword)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockDoctorRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockDoctorRepository) Search(ctx context.Context, criteria entity.DoctorSearchCriteria) ([]entity.Doctor, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Doctor), args.Error(1)
}

type mockAppointmentRepository struct {
	mock.Mock
}

func (m *mockAppointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *mockAppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Appointment), args.Error(1)
}

func (m *mockAppointmentRepository) FindAll(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Appointment), args.Error(1)
}

func (m *mockAppointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *mockAppointmentRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type mockAuditLogRepository struct {
	mock.Mock
}

func (m *mockAuditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *mockAuditLogRepository) FindAll(ctx context.Context, filter entity.AuditLogFilter) ([]entity.AuditLog, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.AuditLog), args.Error(1)
}

func (m *mockAuditLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AuditLog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AuditLog), args.Error(1)
}

type mockAuditService struct {
	mock.Mock
}

func (m *mockAuditService) LogCreate(ctx context.Context, action string, entityName string, entityID string, newValue interface{}) error {
	args := m.Called(ctx, action, entityName, entityID, newValue)
	return args.Error(0)
}

func (m *mockAuditService) LogUpdate(ctx context.Context, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	args := m.Called(ctx, action, entityName, entityID, oldValue, newValue)
	return args.Error(0)
}

func (m *mockAuditService) LogDelete(ctx context.Context, action string, entityName string, entityID string, oldValue interface{}) error {
	args := m.Called(ctx, action, entityName, entityID, oldValue)
	return args.Error(0)
}
