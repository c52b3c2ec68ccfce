package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs     *audit.Logger
	settings *repository.SettingsStore
}

func NewAuditLogsHandler(logs *audit.Logger, settings *repository.SettingsStore) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, settings: settings}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	fromStr := c.Query("from")
	toStr := c.Query("to")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
	}

	if fromStr != "" || toStr != "" {
		settings, err := h.settings.Get(c.Request.Context())
		if err != nil {
			httperr.Internal(c, "settings_unavailable", "Erro ao carregar configurações.")
			return
		}
		if fromStr != "" {
			if from, err := timezone.ParseDate(settings.Timezone, fromStr); err == nil {
				f.From = from
			}
		}
		if toStr != "" {
			if to, err := timezone.ParseDate(settings.Timezone, toStr); err == nil {
				f.To = to.AddDate(0, 0, 1)
			}
		}
	}

	logs, total, err := h.logs.List(c.Request.Context(), f, limit, offset)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
