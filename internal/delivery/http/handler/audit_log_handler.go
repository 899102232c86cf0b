package handler

import (
	"net/http"

	"doctor-booking/internal/delivery/dto"
	"doctor-booking/internal/usecase"
	"doctor-booking/pkg/response"
	"doctor-booking/pkg/validator"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
	validator       *validator.CustomValidator
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase, validator *validator.CustomValidator) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
		validator:       validator,
	}
}

// ListAuditLogs handles GET /audit-logs?entity=&entity_id=&action=
func (h *AuditLogHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := dto.ListAuditLogsRequest{
		Entity:   query.Get("entity"),
		EntityID: query.Get("entity_id"),
		Action:   query.Get("action"),
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	auditLogs, err := h.auditLogUsecase.ListAuditLogs(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", auditLogs)
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	auditLogID, ok := parseIDParam(w, r, "Invalid audit log ID")
	if !ok {
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), auditLogID)
	switch {
	case err == nil:
		response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
	case err == usecase.ErrAuditLogNotFound:
		response.NotFound(w, "Audit log not found")
	default:
		response.InternalServerError(w, "Failed to get audit log")
	}
}
