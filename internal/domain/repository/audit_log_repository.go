package repository

import (
	"context"

	"doctor-booking/internal/domain/entity"

	"github.com/google/uuid"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindAll(ctx context.Context, filter entity.AuditLogFilter) ([]entity.AuditLog, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AuditLog, error)
}
