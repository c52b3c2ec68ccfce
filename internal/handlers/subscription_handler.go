package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucPayment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/payment"
)

type SubscriptionHandler struct {
	subs *ucPayment.Subscriptions
}

func NewSubscriptionHandler(subs *ucPayment.Subscriptions) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs}
}

type CreateSubscriptionRequest struct {
	ClientID     uint    `json:"client_id" binding:"required"`
	PlanName     string  `json:"plan_name" binding:"required,max=100"`
	MonthlyPrice float64 `json:"monthly_price" binding:"required"`
	StartDate    string  `json:"start_date" binding:"required"` // YYYY-MM-DD
}

func (h *SubscriptionHandler) Create(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	sub, err := h.subs.Create(c.Request.Context(), ucPayment.CreateSubscriptionInput{
		ActorID:      middleware.Actor(c).UserID,
		ClientID:     req.ClientID,
		PlanName:     req.PlanName,
		MonthlyPrice: req.MonthlyPrice,
		StartDate:    req.StartDate,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_create_subscription")
		return
	}

	httpresp.Created(c, sub)
}

func (h *SubscriptionHandler) List(c *gin.Context) {
	list, err := h.subs.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_subscriptions")
		return
	}

	httpresp.List(c, list)
}

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	sub, err := h.subs.Cancel(c.Request.Context(), middleware.Actor(c).UserID, id)
	if err != nil {
		httperr.Respond(c, err, "failed_to_cancel_subscription")
		return
	}

	httpresp.OK(c, sub)
}

// Charge issues the current month's PIX payment and moves the billing date.
func (h *SubscriptionHandler) Charge(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.subs.Charge(c.Request.Context(), middleware.Actor(c).UserID, id)
	if err != nil {
		httperr.Respond(c, err, "failed_to_charge_subscription")
		return
	}

	httpresp.Created(c, p)
}
