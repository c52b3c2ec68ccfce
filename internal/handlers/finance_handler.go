package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/report"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucPayment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/payment"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type FinanceHandler struct {
	list     *ucPayment.ListPayments
	settings *repository.SettingsStore
}

func NewFinanceHandler(list *ucPayment.ListPayments, settings *repository.SettingsStore) *FinanceHandler {
	return &FinanceHandler{list: list, settings: settings}
}

func (h *FinanceHandler) Summary(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")

	summary, err := h.list.Summary(c.Request.Context(), from, to)
	if err != nil {
		httperr.Respond(c, err, "failed_to_summarize_payments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"from":    from,
		"to":      to,
		"summary": summary,
	})
}

// Export streams the filtered payments as an .xlsx workbook.
func (h *FinanceHandler) Export(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")

	payments, err := h.list.Execute(c.Request.Context(), c.Query("status"), from, to)
	if err != nil {
		httperr.Respond(c, err, "failed_to_export_payments")
		return
	}

	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err, "failed_to_export_payments")
		return
	}

	// Rendered to memory first so a failure still gets a JSON error.
	var buf bytes.Buffer
	if err := report.WriteFinance(&buf, payments, timezone.Location(settings.Timezone)); err != nil {
		httperr.Respond(c, err, "failed_to_export_payments")
		return
	}

	name := "financeiro"
	if from != "" {
		name += "_" + from
	}
	if to != "" {
		name += "_" + to
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
