package handlers

import (
	"net/http"
	"strconv"

	"weather-api/internal/repository"
	"weather-api/internal/services"
)

const maxAuditPageSize = 100

type AuditLogHandler struct {
	auditLogService services.AuditLogService
}

func NewAuditLogHandler(auditLogService services.AuditLogService) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogService: auditLogService,
	}
}

// ListAuditLogs pages through record mutations. ?entityId= narrows to a single record.
func (h *AuditLogHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(query.Get("pageSize"))
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > maxAuditPageSize {
		pageSize = maxAuditPageSize
	}

	filter := repository.AuditLogFilter{
		EntityType: query.Get("entityType"),
		EntityID:   query.Get("entityId"),
		Page:       page,
		PageSize:   pageSize,
	}

	logs, total, err := h.auditLogService.GetAuditLogs(ctx, filter)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Error fetching audit logs")
		return
	}

	response := map[string]interface{}{
		"logs":     logs,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	}

	respondWithJSON(w, http.StatusOK, response)
}
