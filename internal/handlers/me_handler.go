package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type MeHandler struct {
	db    *gorm.DB
	audit audit.Recorder
}

func NewMeHandler(db *gorm.DB, rec audit.Recorder) *MeHandler {
	return &MeHandler{db: db, audit: rec}
}

type UpdatePixKeyRequest struct {
	// Empty clears the key; charges then fall back to the salon's key.
	PixKey string `json:"pix_key"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	actor := middleware.Actor(c)

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, actor.UserID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	body := gin.H{
		"user": gin.H{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"phone":      user.Phone,
			"user_level": user.UserLevel,
			"role":       access.RoleOf(user.UserLevel),
		},
	}

	if actor.IsStaff() {
		body["pix_key"] = user.PixKey
	}

	// Perfil de cliente (quando existir)
	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", user.ID).
		First(&client).Error; err == nil {
		body["client"] = client
	}

	c.JSON(http.StatusOK, body)
}

func (h *MeHandler) UpdatePixKey(c *gin.Context) {
	actor := middleware.Actor(c)

	var req UpdatePixKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	key := strings.TrimSpace(req.PixKey)
	if key != "" && !validators.IsPixKeyValid(key) {
		httperr.BadRequest(c, "invalid_pix_key", "Chave PIX inválida.")
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Model(&models.User{}).
		Where("id = ?", actor.UserID).
		Update("pix_key", key)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_update_pix_key", "Erro ao salvar chave PIX.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "staff_pix_key_updated",
		Entity:   "user",
		EntityID: &actor.UserID,
	})

	c.JSON(http.StatusOK, gin.H{"pix_key": key})
}
