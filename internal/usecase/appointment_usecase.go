package usecase

import (
	"context"
	"errors"
	"time"

	"doctor-booking/internal/converter"
	"doctor-booking/internal/delivery/dto"
	"doctor-booking/internal/domain/entity"
	"doctor-booking/internal/domain/repository"
	"doctor-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrInvalidDate          = errors.New("date must be formatted as YYYY-MM-DD")
	ErrInvalidTime          = errors.New("time must be formatted as HH:MM")
	ErrInvalidTimeRange     = errors.New("end time must be after start time")
	ErrInvalidDoctorIDQuery = errors.New("doctor_id must be a valid UUID")
)

const auditEntityAppointment = "appointment"

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context, req *dto.ListAppointmentsRequest) (*dto.AppointmentListResponse, error)
	UpdateAppointment(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, appointmentID uuid.UUID) error
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		auditService:    auditService,
	}
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := time.Parse(entity.DateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	startTime, endTime, err := normalizeTimeRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	// Validate doctor exists
	doctor, err := u.doctorRepo.FindByID(ctx, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	appointment := &entity.Appointment{
		DoctorID:  req.DoctorID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}
	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	response := converter.AppointmentToResponse(appointment)

	// Audit log - create appointment
	if err := u.auditService.LogCreate(ctx, entity.AuditActionAppointmentCreate, auditEntityAppointment, appointment.ID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return response, nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

// ListAppointments is the schedule view: optionally narrowed to one doctor and one day.
func (u *appointmentUsecase) ListAppointments(ctx context.Context, req *dto.ListAppointmentsRequest) (*dto.AppointmentListResponse, error) {
	filter := entity.AppointmentFilter{}

	if req.DoctorID != "" {
		doctorID, err := uuid.Parse(req.DoctorID)
		if err != nil {
			return nil, ErrInvalidDoctorIDQuery
		}
		filter.DoctorID = doctorID
	}
	if req.Date != "" {
		date, err := time.Parse(entity.DateLayout, req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		filter.Date = &date
	}

	appointments, err := u.appointmentRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	responses := converter.AppointmentsToResponses(appointments)

	return &dto.AppointmentListResponse{
		Appointments: responses,
		Total:        len(responses),
	}, nil
}

func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	// Capture old value for audit
	oldValue := converter.AppointmentToResponse(appointment)

	if req.Date != nil {
		date, err := time.Parse(entity.DateLayout, *req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		appointment.Date = date
	}

	start, end := appointment.StartTime, appointment.EndTime
	if req.StartTime != nil {
		start = *req.StartTime
	}
	if req.EndTime != nil {
		end = *req.EndTime
	}
	startTime, endTime, err := normalizeTimeRange(start, end)
	if err != nil {
		return nil, err
	}
	appointment.StartTime = startTime
	appointment.EndTime = endTime

	if err := u.appointmentRepo.Update(ctx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}

	// Audit log - update appointment
	newValue := converter.AppointmentToResponse(appointment)
	if err := u.auditService.LogUpdate(ctx, entity.AuditActionAppointmentUpdate, auditEntityAppointment, appointmentID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return newValue, nil
}

func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	appointment, err := u.findAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	oldValue := converter.AppointmentToResponse(appointment)

	affectedRows, err := u.appointmentRepo.Delete(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed delete appointment: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrAppointmentNotFound
	}

	// Audit log - delete appointment
	if err := u.auditService.LogDelete(ctx, entity.AuditActionAppointmentDelete, auditEntityAppointment, appointmentID.String(), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}

func (u *appointmentUsecase) findAppointment(ctx context.Context, appointmentID uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

// normalizeTimeRange parses both times, checks ordering and returns them
// zero-padded so lexical order matches chronological order.
func normalizeTimeRange(start, end string) (string, string, error) {
	startTime, err := time.Parse(entity.TimeLayout, start)
	if err != nil {
		return "", "", ErrInvalidTime
	}
	endTime, err := time.Parse(entity.TimeLayout, end)
	if err != nil {
		return "", "", ErrInvalidTime
	}
	if !endTime.After(startTime) {
		return "", "", ErrInvalidTimeRange
	}
	return startTime.Format(entity.TimeLayout), endTime.Format(entity.TimeLayout), nil
}
