package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type UserHandler struct {
	db    *gorm.DB
	audit audit.Recorder
}

func NewUserHandler(db *gorm.DB, rec audit.Recorder) *UserHandler {
	return &UserHandler{db: db, audit: rec}
}

type SetLevelRequest struct {
	UserLevel int `json:"user_level" binding:"min=0,max=100"`
}

// List returns profiles, optionally narrowed to one ?role= tier.
func (h *UserHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context())
	if role := c.Query("role"); role != "" {
		switch access.Role(role) {
		case access.RoleAdmin:
			q = q.Where("user_level >= ?", access.LevelAdmin)
		case access.RoleStaff:
			q = q.Where("user_level >= ? AND user_level < ?", access.LevelStaff, access.LevelAdmin)
		case access.RoleClient:
			q = q.Where("user_level < ?", access.LevelStaff)
		default:
			httperr.BadRequest(c, "invalid_role", "Perfil inválido.")
			return
		}
	}

	var users []models.User
	if err := q.Order("name ASC").Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Erro ao listar usuários.")
		return
	}

	httpresp.List(c, users)
}

func (h *UserHandler) SetLevel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req SetLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	actor := middleware.Actor(c)
	if id == actor.UserID && req.UserLevel < access.LevelAdmin {
		httperr.Conflict(c, "cannot_demote_self", "Não é possível remover o próprio acesso de administrador.")
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, id).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}

	previous := user.UserLevel
	if err := h.db.WithContext(c.Request.Context()).
		Model(&user).
		Update("user_level", req.UserLevel).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Erro ao atualizar usuário.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "user_level_changed",
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]any{
			"from": previous,
			"to":   req.UserLevel,
		},
	})

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"user_level": req.UserLevel,
		"role":       access.RoleOf(req.UserLevel),
	})
}
