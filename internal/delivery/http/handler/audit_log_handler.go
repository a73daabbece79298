package handler

import (
	"net/http"

	"clinic-booking/internal/domain/entity"
	"clinic-booking/internal/usecase"
	"clinic-booking/pkg/query"
	"clinic-booking/pkg/response"

	"github.com/google/uuid"
)

// auditSortFields is the audit trail's sortBy allow-list.
var auditSortFields = []string{"created_at", "action"}

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{auditLogUsecase: auditLogUsecase}
}

// GetAuditLogs serves the admin audit trail with user/action filters,
// date range, sorting, and pagination.
func (h *AuditLogHandler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	pagination, err := query.ParsePagination(values)
	if err != nil {
		writeParamError(w, err)
		return
	}

	var userID *uuid.UUID
	if raw := values.Get("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.ValidationError(w, map[string]string{"userId": "must be a valid UUID"})
			return
		}
		userID = &id
	}

	from, to, err := query.ParseDateRange(values)
	if err != nil {
		writeParamError(w, err)
		return
	}

	sortBy, sortOrder := query.ParseSort(values, auditSortFields, "created_at")

	filter := &entity.AuditLogFilter{
		UserID: userID,
		Action: values.Get("action"),
		From:   from,
		To:     to,
		Page: entity.ListPage{
			Offset:    pagination.Offset(),
			Limit:     pagination.PageSize,
			SortBy:    sortBy,
			SortOrder: sortOrder,
		},
	}

	logs, total, err := h.auditLogUsecase.List(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Audit logs retrieved successfully", logs, buildMeta(pagination, total))
}
