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
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDoctorNotFound     = errors.New("doctor not found")
	ErrDoctorEmailExists  = errors.New("email already exists")
	ErrInvalidOldPassword = errors.New("invalid old password")
	ErrInvalidBirthdate   = errors.New("birthdate must be formatted as YYYY-MM-DD")
	ErrNegativeFees       = errors.New("fees must not be negative")
	ErrPasswordTooLong    = errors.New("password must not exceed 72 bytes")
)

const auditEntityDoctor = "doctor"

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	GetDoctorByEmail(ctx context.Context, email string) (*dto.DoctorResponse, error)
	GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	ChangePassword(ctx context.Context, doctorID uuid.UUID, req *dto.ChangePasswordRequest) error
	DeleteDoctor(ctx context.Context, doctorID uuid.UUID) error
}

type doctorUsecase struct {
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
}

func NewDoctorUsecase(
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		log:          log,
		doctorRepo:   doctorRepo,
		auditService: auditService,
	}
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	if req.Fees.IsNegative() {
		return nil, ErrNegativeFees
	}

	birthdate, err := parseOptionalDate(req.Birthdate)
	if err != nil {
		return nil, ErrInvalidBirthdate
	}

	// Hash password
	hashedPassword, err := u.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	doctor := &entity.Doctor{
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		Password:       string(hashedPassword),
		About:          req.About,
		Specialization: req.Specialization,
		Address: entity.Address{
			City:    req.Address.City,
			Country: req.Address.Country,
			Region:  req.Address.Region,
		},
		Image:       req.Image,
		Gender:      req.Gender,
		Birthdate:   birthdate,
		IsDoctor:    true,
		Clinic:      req.Clinic,
		Fees:        req.Fees,
		WaitingTime: req.WaitingTime,
		ContactInfo: req.ContactInfo,
	}
	if err := u.doctorRepo.Create(ctx, doctor); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDoctorEmailExists
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	response := converter.DoctorToResponse(doctor)

	// Audit log - create doctor
	if err := u.auditService.LogCreate(ctx, entity.AuditActionDoctorCreate, auditEntityDoctor, doctor.ID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		// Audit failures never fail the request
	}

	return response, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.findDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetDoctorByEmail(ctx context.Context, email string) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByEmail(ctx, email)
	if err != nil {
		u.log.Warnf("Failed to find doctor by email: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}

	responses := converter.DoctorsToResponses(doctors)

	return &dto.DoctorListResponse{
		Doctors: responses,
		Total:   len(responses),
	}, nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor, err := u.findDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	// Capture old value for audit
	oldValue := converter.DoctorToResponse(doctor)

	if err := applyDoctorUpdate(doctor, req); err != nil {
		return nil, err
	}

	if err := u.doctorRepo.Update(ctx, doctor); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDoctorEmailExists
		}
		u.log.Warnf("Failed to update doctor: %+v", err)
		return nil, err
	}

	// Audit log - update doctor
	newValue := converter.DoctorToResponse(doctor)
	if err := u.auditService.LogUpdate(ctx, entity.AuditActionDoctorUpdate, auditEntityDoctor, doctorID.String(), oldValue, newValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return newValue, nil
}

// ChangePassword stores a new hash only when oldPassword matches the current one.
func (u *doctorUsecase) ChangePassword(ctx context.Context, doctorID uuid.UUID, req *dto.ChangePasswordRequest) error {
	doctor, err := u.findDoctor(ctx, doctorID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(doctor.Password), []byte(req.OldPassword)); err != nil {
		return ErrInvalidOldPassword
	}

	hashedPassword, err := u.hashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	affectedRows, err := u.doctorRepo.UpdatePassword(ctx, doctorID, string(hashedPassword))
	if err != nil {
		u.log.Warnf("Failed to update password: %+v", err)
		return err
	}
	if affectedRows == 0 {
		return ErrDoctorNotFound
	}

	// Hashes stay out of the audit trail
	if err := u.auditService.LogUpdate(ctx, entity.AuditActionDoctorPasswordChange, auditEntityDoctor, doctorID.String(), nil, nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}

func (u *doctorUsecase) DeleteDoctor(ctx context.Context, doctorID uuid.UUID) error {
	// Get doctor for audit log before delete
	doctor, err := u.findDoctor(ctx, doctorID)
	if err != nil {
		return err
	}
	oldValue := converter.DoctorToResponse(doctor)

	affectedRows, err := u.doctorRepo.Delete(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed delete doctor: %+v", err)
		return err
	}

	if affectedRows == 0 {
		u.log.Warnf("Failed delete doctor: %+v", "doctor not found")
		return ErrDoctorNotFound
	}

	// Audit log - delete doctor
	if err := u.auditService.LogDelete(ctx, entity.AuditActionDoctorDelete, auditEntityDoctor, doctorID.String(), oldValue); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return nil
}

func (u *doctorUsecase) findDoctor(ctx context.Context, doctorID uuid.UUID) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		u.log.Warnf("Failed to find doctor: %+v", "doctor not found")
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}

func applyDoctorUpdate(doctor *entity.Doctor, req *dto.UpdateDoctorRequest) error {
	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Phone != nil {
		doctor.Phone = *req.Phone
	}
	if req.Email != nil {
		doctor.Email = *req.Email
	}
	if req.About != nil {
		doctor.About = *req.About
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.Address != nil {
		doctor.Address = entity.Address{
			City:    req.Address.City,
			Country: req.Address.Country,
			Region:  req.Address.Region,
		}
	}
	if req.Image != nil {
		doctor.Image = *req.Image
	}
	if req.Gender != nil {
		doctor.Gender = *req.Gender
	}
	if req.Birthdate != nil {
		birthdate, err := parseOptionalDate(*req.Birthdate)
		if err != nil {
			return ErrInvalidBirthdate
		}
		doctor.Birthdate = birthdate
	}
	if req.IsDoctor != nil {
		doctor.IsDoctor = *req.IsDoctor
	}
	if req.Rating != nil {
		doctor.Rating = *req.Rating
	}
	if req.NumberOfVisitors != nil {
		doctor.NumberOfVisitors = *req.NumberOfVisitors
	}
	if req.Clinic != nil {
		doctor.Clinic = *req.Clinic
	}
	if req.Fees != nil {
		if req.Fees.IsNegative() {
			return ErrNegativeFees
		}
		doctor.Fees = *req.Fees
	}
	if req.WaitingTime != nil {
		doctor.WaitingTime = *req.WaitingTime
	}
	if req.ContactInfo != nil {
		doctor.ContactInfo = *req.ContactInfo
	}
	return nil
}

// parseOptionalDate returns nil for an empty string.
func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := time.Parse(entity.DateLayout, value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

// hashPassword hashes with bcrypt, which only accepts up to 72 bytes.
// The validator counts runes, so multi-byte input can still exceed it.
func (u *doctorUsecase) hashPassword(password string) ([]byte, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}
	return hashed, nil
}
