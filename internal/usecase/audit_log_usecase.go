package usecase

import (
	"context"
	"errors"

	"doctor-booking/internal/converter"
	"doctor-booking/internal/delivery/dto"
	"doctor-booking/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrAuditLogNotFound = errors.New("audit log not found")
)

type AuditLogUsecase interface {
	ListAuditLogs(ctx context.Context, req *dto.ListAuditLogsRequest) (*dto.AuditLogListResponse, error)
	GetAuditLog(ctx context.Context, id uuid.UUID) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

// ListAuditLogs returns the trail newest first, optionally narrowed to one
// entity kind, one record or one action.
func (u *auditLogUsecase) ListAuditLogs(ctx context.Context, req *dto.ListAuditLogsRequest) (*dto.AuditLogListResponse, error) {
	filter := converter.AuditLogFilterFromRequest(req)

	logs, err := u.auditLogRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.WithFields(logrus.Fields{
			"entity":    filter.Entity,
			"entity_id": filter.EntityID,
			"action":    filter.Action,
		}).Warnf("Failed to list audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}

func (u *auditLogUsecase) GetAuditLog(ctx context.Context, id uuid.UUID) (*dto.AuditLogResponse, error) {
	auditLog, err := u.auditLogRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find audit log: %+v", err)
		return nil, err
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}
