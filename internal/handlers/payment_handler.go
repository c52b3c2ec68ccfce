package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/pix"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/qrcode"
	ucPayment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/payment"
)

// ======================================================
// HANDLER
// ======================================================

type PaymentHandler struct {
	db      *gorm.DB
	list    *ucPayment.ListPayments
	settle  *ucPayment.Settle
	gateway *ucPayment.GatewaySync
}

func NewPaymentHandler(
	db *gorm.DB,
	list *ucPayment.ListPayments,
	settle *ucPayment.Settle,
	gateway *ucPayment.GatewaySync,
) *PaymentHandler {
	return &PaymentHandler{
		db:      db,
		list:    list,
		settle:  settle,
		gateway: gateway,
	}
}

// ======================================================
// LIST / GET
// ======================================================

func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.list.Execute(
		c.Request.Context(),
		c.Query("status"),
		c.Query("from"),
		c.Query("to"),
	)
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_payments")
		return
	}

	httpresp.List(c, payments)
}

func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.list.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err, "failed_to_get_payment")
		return
	}

	httpresp.OK(c, p)
}

// ======================================================
// SETTLEMENT
// ======================================================

func (h *PaymentHandler) MarkPaid(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	userID := middleware.Actor(c).UserID
	p, err := h.settle.MarkPaid(c.Request.Context(), &userID, id)
	if err != nil {
		httperr.Respond(c, err, "failed_to_update_payment")
		return
	}

	httpresp.OK(c, p)
}

// SweepOverdue flags every pending payment whose due date has passed.
func (h *PaymentHandler) SweepOverdue(c *gin.Context) {
	userID := middleware.Actor(c).UserID
	n, err := h.settle.SweepOverdue(c.Request.Context(), &userID)
	if err != nil {
		httperr.Respond(c, err, "failed_to_sweep_overdue")
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": n})
}

// ======================================================
// QR CODE
// ======================================================

// QRCode renders the stored copy-paste code. Clients only reach their own
// payments; staff and admins reach any.
func (h *PaymentHandler) QRCode(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	format, err := qrcode.ParseFormat(c.Query("format"))
	if err != nil {
		httperr.BadRequest(c, "invalid_format", "Formato inválido (png ou webp).")
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))

	p, err := h.list.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err, "failed_to_get_payment")
		return
	}

	if actor := middleware.Actor(c); !actor.IsStaff() && !h.ownsPayment(c, actor.UserID, p) {
		httperr.NotFound(c, "payment_not_found", "Pagamento não encontrado.")
		return
	}

	// A stored code that fails its own checksum would scan as garbage.
	if !pix.Verify(p.PixCode) {
		slog.Error("stored pix code failed verification", "payment_id", p.ID)
		httperr.Internal(c, "invalid_pix_code", "Código PIX armazenado inválido.")
		return
	}

	img, err := qrcode.Render(p.PixCode, format, size)
	if err != nil {
		httperr.Internal(c, "qrcode_failed", "Erro ao gerar QR code.")
		return
	}

	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, format.ContentType(), img)
}

func (h *PaymentHandler) ownsPayment(c *gin.Context, userID uint, p *models.Payment) bool {
	if p.ClientID == nil {
		return false
	}
	var n int64
	h.db.WithContext(c.Request.Context()).
		Model(&models.Client{}).
		Where("id = ? AND user_id = ?", *p.ClientID, userID).
		Count(&n)
	return n > 0
}

// ======================================================
// GATEWAY (MERCADO PAGO)
// ======================================================

func (h *PaymentHandler) RegisterGateway(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	out, err := h.gateway.Register(c.Request.Context(), middleware.Actor(c).UserID, id)
	if err != nil {
		httperr.Respond(c, err, "gateway_register_failed")
		return
	}

	httpresp.Created(c, out)
}

func (h *PaymentHandler) SyncGateway(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.gateway.Sync(c.Request.Context(), middleware.Actor(c).UserID, id)
	if err != nil {
		httperr.Respond(c, err, "gateway_sync_failed")
		return
	}

	httpresp.OK(c, p)
}
