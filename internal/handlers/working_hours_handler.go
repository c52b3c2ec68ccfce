package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type WorkingHoursHandler struct {
	db    *gorm.DB
	audit audit.Recorder
}

func NewWorkingHoursHandler(db *gorm.DB, rec audit.Recorder) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db, audit: rec}
}

type WorkingDayConfig struct {
	// No "required": Sunday is 0.
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,max=7,dive"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	staffID, ok := h.target(c)
	if !ok {
		return
	}

	var hours []models.WorkingHours
	if err := h.db.WithContext(c.Request.Context()).
		Where("staff_id = ?", staffID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_working_hours", "Erro ao buscar horários.")
		return
	}

	httpresp.List(c, hours)
}

// Update replaces the whole week. Days left out are closed.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	staffID, ok := h.target(c)
	if !ok {
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	seen := map[int]bool{}
	toCreate := make([]models.WorkingHours, 0, len(req.Days))
	for _, d := range req.Days {
		if seen[d.Weekday] {
			httperr.BadRequest(c, "duplicate_weekday", "Dia da semana repetido.")
			return
		}
		seen[d.Weekday] = true

		wh := models.WorkingHours{
			StaffID:    staffID,
			Weekday:    d.Weekday,
			Active:     d.Active,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			LunchStart: d.LunchStart,
			LunchEnd:   d.LunchEnd,
		}
		if err := domain.ValidateWorkingDay(&wh); err != nil {
			httperr.Respond(c, err, "invalid_request")
			return
		}
		toCreate = append(toCreate, wh)
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("staff_id = ?", staffID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_working_hours", "Erro ao salvar horários.")
		return
	}

	userID := middleware.Actor(c).UserID
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "working_hours_updated",
		Entity:   "user",
		EntityID: &staffID,
	})

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// target is the caller's own schedule, or ?staff_id= for admins.
func (h *WorkingHoursHandler) target(c *gin.Context) (uint, bool) {
	actor := middleware.Actor(c)
	staffID, ok := staffScope(c, actor)
	if !ok {
		return 0, false
	}
	if staffID == nil {
		return actor.UserID, true
	}
	return *staffID, true
}
