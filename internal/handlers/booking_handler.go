package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// BookingHandler serves the client side of the booking wizard.
type BookingHandler struct {
	db           *gorm.DB
	availability *appointment.GetAvailability
	submit       *appointment.SubmitRequest
}

func NewBookingHandler(
	db *gorm.DB,
	availability *appointment.GetAvailability,
	submit *appointment.SubmitRequest,
) *BookingHandler {
	return &BookingHandler{
		db:           db,
		availability: availability,
		submit:       submit,
	}
}

// StaffCard is what a client sees when choosing a professional.
type StaffCard struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

////////////////////////////////////////////////////////
// CATALOGUE
////////////////////////////////////////////////////////

func (h *BookingHandler) ListServices(c *gin.Context) {
	category := strings.TrimSpace(strings.ToLower(c.Query("category")))

	q := h.db.WithContext(c.Request.Context()).Where("active = true")
	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

func (h *BookingHandler) ListStaff(c *gin.Context) {
	var staff []StaffCard
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.User{}).
		Select("id, name").
		Where("user_level >= ? AND active = true", access.LevelStaff).
		Order("name ASC").
		Scan(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Erro ao listar profissionais.")
		return
	}

	httpresp.List(c, staff)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *BookingHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")
	staffIDStr := c.Query("staff_id")

	if dateStr == "" || serviceIDStr == "" || staffIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data, serviço e profissional obrigatórios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}
	staffID, err := strconv.ParseUint(staffIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_staff_id", "Profissional inválido.")
		return
	}

	slots, err := h.availability.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			StaffID:   uint(staffID),
			ServiceID: uint(serviceID),
			Date:      dateStr,
		},
	)
	if err != nil {
		httperr.Respond(c, err, "availability_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// WIZARD
////////////////////////////////////////////////////////

// Submit advances the client's draft one step. The confirm step stores the
// request for staff review and answers 201.
func (h *BookingHandler) Submit(c *gin.Context) {
	var draft booking.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.submit.Execute(c.Request.Context(), middleware.Actor(c).UserID, draft)
	if err != nil {
		httperr.Respond(c, err, "failed_to_submit_request")
		return
	}

	status := http.StatusOK
	if out.Request != nil {
		status = http.StatusCreated
	}
	c.JSON(status, out)
}

// Back returns the draft one step earlier with every choice kept.
func (h *BookingHandler) Back(c *gin.Context) {
	var draft booking.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	draft.Back()
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// MyRequests lists the caller's own requests, newest first.
func (h *BookingHandler) MyRequests(c *gin.Context) {
	userID := middleware.Actor(c).UserID

	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		First(&client).Error; err != nil {
		httperr.Respond(c, httperr.ErrBusiness("client_profile_not_found"), "failed_to_list_requests")
		return
	}

	var list []models.AppointmentRequest
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Service").
		Preload("Staff").
		Where("client_id = ?", client.ID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		httperr.Internal(c, "failed_to_list_requests", "Erro ao listar solicitações.")
		return
	}

	httpresp.List(c, list)
}

////////////////////////////////////////////////////////
// STAFF REVIEW
////////////////////////////////////////////////////////

type RequestReviewHandler struct {
	list   *appointment.ListRequests
	review *appointment.ReviewRequest
}

func NewRequestReviewHandler(
	list *appointment.ListRequests,
	review *appointment.ReviewRequest,
) *RequestReviewHandler {
	return &RequestReviewHandler{
		list:   list,
		review: review,
	}
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"max=255"`
}

func (h *RequestReviewHandler) List(c *gin.Context) {
	list, err := h.list.Execute(c.Request.Context(), middleware.Actor(c), c.Query("status"))
	if err != nil {
		httperr.Respond(c, err, "failed_to_list_requests")
		return
	}

	httpresp.List(c, list)
}

func (h *RequestReviewHandler) Approve(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	req, err := h.review.Approve(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.Respond(c, err, "failed_to_approve_request")
		return
	}

	httpresp.OK(c, req)
}

func (h *RequestReviewHandler) Reject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	// The reason is optional; an empty body is fine.
	var body RejectRequest
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	req, err := h.review.Reject(c.Request.Context(), middleware.Actor(c), id, body.Reason)
	if err != nil {
		httperr.Respond(c, err, "failed_to_reject_request")
		return
	}

	httpresp.OK(c, req)
}
