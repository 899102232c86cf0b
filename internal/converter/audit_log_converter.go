package converter

import (
	"doctor-booking/internal/delivery/dto"
	"doctor-booking/internal/domain/entity"
)

// AuditLogToResponse maps an audit entry to its response shape
func AuditLogToResponse(log *entity.AuditLog) *dto.AuditLogResponse {
	if log == nil {
		return nil
	}

	return &dto.AuditLogResponse{
		ID:        log.ID,
		Action:    log.Action,
		Entity:    log.Entity,
		EntityID:  log.EntityID,
		Metadata:  log.Metadata,
		CreatedAt: log.CreatedAt,
	}
}

// AuditLogsToResponses never returns nil, so an empty listing renders as []
func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, len(logs))
	for i := range logs {
		responses[i] = *AuditLogToResponse(&logs[i])
	}
	return responses
}

// AuditLogFilterFromRequest maps validated query parameters onto a store filter
func AuditLogFilterFromRequest(req *dto.ListAuditLogsRequest) entity.AuditLogFilter {
	if req == nil {
		return entity.AuditLogFilter{}
	}
	return entity.AuditLogFilter{
		Entity:   req.Entity,
		EntityID: req.EntityID,
		Action:   req.Action,
	}
}
