package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/pix"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type SettingsHandler struct {
	store *repository.SettingsStore
	audit audit.Recorder
}

func NewSettingsHandler(store *repository.SettingsStore, rec audit.Recorder) *SettingsHandler {
	return &SettingsHandler{store: store, audit: rec}
}

// Nil fields are left unchanged.
type UpdateSettingsRequest struct {
	Name              *string `json:"name" binding:"omitempty,min=1,max=100"`
	Phone             *string `json:"phone" binding:"omitempty,max=20"`
	Address           *string `json:"address" binding:"omitempty,max=255"`
	Timezone          *string `json:"timezone"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`

	PixKey       *string `json:"pix_key"`
	MerchantName *string `json:"merchant_name"`
	MerchantCity *string `json:"merchant_city"`
}

func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.store.Get(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_get_settings", "Erro ao buscar configurações.")
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	settings, err := h.store.Get(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_get_settings", "Erro ao buscar configurações.")
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		settings.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		settings.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		settings.Address = strings.TrimSpace(*req.Address)
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Fuso horário inválido.")
			return
		}
		settings.Timezone = *req.Timezone
	}

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		settings.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	// --------------------------------------------------
	// Recebedor PIX
	// --------------------------------------------------

	if req.PixKey != nil {
		key := strings.TrimSpace(*req.PixKey)
		if !validators.IsPixKeyValid(key) {
			httperr.BadRequest(c, "invalid_pix_key", "Chave PIX inválida.")
			return
		}
		settings.PixKey = key
	}

	// The BR Code only carries ASCII; store what will actually be encoded.
	if req.MerchantName != nil {
		name := pix.ASCII(*req.MerchantName, pix.MaxMerchantNameLength)
		if name == "" {
			httperr.BadRequest(c, "invalid_merchant_name", "Nome do recebedor inválido.")
			return
		}
		settings.MerchantName = name
	}
	if req.MerchantCity != nil {
		city := pix.ASCII(*req.MerchantCity, pix.MaxMerchantCityLength)
		if city == "" {
			httperr.BadRequest(c, "invalid_merchant_city", "Cidade do recebedor inválida.")
			return
		}
		settings.MerchantCity = city
	}

	if err := h.store.Save(c.Request.Context(), settings); err != nil {
		httperr.Internal(c, "failed_to_update_settings", "Erro ao salvar as configurações.")
		return
	}

	userID := middleware.Actor(c).UserID
	h.audit.Dispatch(audit.Event{
		UserID: &userID,
		Action: "settings_updated",
		Entity: "settings",
	})

	c.JSON(http.StatusOK, settings)
}
