package dto

import (
	"time"

	"doctor-booking/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

// ListAuditLogsRequest carries the optional audit trail filters from the query string
type ListAuditLogsRequest struct {
	Entity   string `json:"entity" validate:"omitempty,oneof=doctor appointment"`
	EntityID string `json:"entity_id" validate:"omitempty,uuid"`
	Action   string `json:"action" validate:"omitempty,max=100"`
}

// Response DTOs

type AuditLogResponse struct {
	ID        uuid.UUID   `json:"id"`
	Action    string      `json:"action"`
	Entity    string      `json:"entity"`
	EntityID  string      `json:"entity_id"`
	Metadata  entity.JSON `json:"metadata"`
	CreatedAt time.Time   `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
