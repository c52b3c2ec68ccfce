package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	ucPayment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/payment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create        *ucAppointment.CreateAppointment
	listByDate    *ucAppointment.ListAppointmentsByDate
	listByMonth   *ucAppointment.ListAppointmentsByMonth
	occurrences   *ucAppointment.ListOccurrences
	changeStatus  *ucAppointment.ChangeStatus
	paymentStatus *ucAppointment.SetPaymentStatus
	charge        *ucPayment.ChargeAppointment
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	listByDate *ucAppointment.ListAppointmentsByDate,
	listByMonth *ucAppointment.ListAppointmentsByMonth,
	occurrences *ucAppointment.ListOccurrences,
	changeStatus *ucAppointment.ChangeStatus,
	paymentStatus *ucAppointment.SetPaymentStatus,
	charge *ucPayment.ChargeAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:        create,
		listByDate:    listByDate,
		listByMonth:   listByMonth,
		occurrences:   occurrences,
		changeStatus:  changeStatus,
		paymentStatus: paymentStatus,
		charge:        charge,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	// Admins may book on another staff member's agenda.
	StaffID uint `json:"staff_id"`

	ClientType    string `json:"client_type"`
	ClientID      uint   `json:"client_id"`
	SporadicName  string `json:"sporadic_name"`
	SporadicPhone string `json:"sporadic_phone"`
	EventTitle    string `json:"event_title"`

	ServiceID uint     `json:"service_id" binding:"required"`
	Date      string   `json:"date" binding:"required"`
	Time      string   `json:"time" binding:"required"`
	Price     *float64 `json:"price"`
	Notes     string   `json:"notes"`

	RecurrenceType    string `json:"recurrence_type"`
	RecurrenceDays    []int  `json:"recurrence_days" binding:"omitempty,dive,min=0,max=6"`
	RecurrenceEndDate string `json:"recurrence_end_date"`
}

type PaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	actor := middleware.Actor(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	client, err := domain.NewClientIdentification(
		req.ClientType,
		req.ClientID,
		req.SporadicName,
		req.SporadicPhone,
		req.EventTitle,
	)
	if err != nil {
		httperr.Respond(c, err, "invalid_request")
		return
	}

	staffID := actor.UserID
	if actor.IsAdmin() && req.StaffID != 0 {
		staffID = req.StaffID
	}

	out, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ActorID:           actor.UserID,
		StaffID:           staffID,
		Client:            client,
		ServiceID:         req.ServiceID,
		Date:              req.Date,
		Time:              req.Time,
		Price:             req.Price,
		Notes:             req.Notes,
		RecurrenceType:    req.RecurrenceType,
		RecurrenceDays:    req.RecurrenceDays,
		RecurrenceEndDate: req.RecurrenceEndDate,
	})
	if err != nil {
		httperr.Respond(c, err, "failed_to_create_appointment")
		return
	}

	httpresp.Created(c, out)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	staffID, ok := staffScope(c, middleware.Actor(c))
	if !ok {
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), staffID, dateStr)
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_appointments")
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	staffID, ok := staffScope(c, middleware.Actor(c))
	if !ok {
		return
	}

	list, err := h.listByMonth.Execute(c.Request.Context(), staffID, year, month)
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_appointments")
		return
	}

	httpresp.List(c, list)
}

// Occurrences lists the children generated from a recurring seed.
func (h *AppointmentHandler) Occurrences(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.occurrences.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_occurrences")
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// STATUS
// ======================================================

// Transition builds the handler for one lifecycle action
// (confirm, complete, cancel, no-show, revert).
func (h *AppointmentHandler) Transition(action domain.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		ap, err := h.changeStatus.Execute(c.Request.Context(), middleware.Actor(c), id, action)
		if err != nil {
			httperr.Respond(c, err, "failed_to_update_appointment")
			return
		}

		httpresp.OK(c, ap)
	}
}

func (h *AppointmentHandler) SetPaymentStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req PaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.paymentStatus.Execute(c.Request.Context(), middleware.Actor(c), id, req.Status)
	if err != nil {
		httperr.Respond(c, err, "failed_to_update_appointment")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// CHARGE (PIX)
// ======================================================

func (h *AppointmentHandler) Charge(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	p, err := h.charge.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.Respond(c, err, "failed_to_issue_payment")
		return
	}

	httpresp.Created(c, p)
}
