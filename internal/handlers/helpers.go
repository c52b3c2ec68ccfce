package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// --------------------------------------------------
// Parâmetros de rota / query
// --------------------------------------------------

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return 0, false
	}
	return uint(id), true
}

// staffScope resolves whose agenda a listing covers. Staff always see their
// own; admins see everything unless they pass ?staff_id=.
func staffScope(c *gin.Context, actor access.Actor) (*uint, bool) {
	if !actor.IsAdmin() {
		id := actor.UserID
		return &id, true
	}

	raw := c.Query("staff_id")
	if raw == "" {
		return nil, true
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_staff_id", "Profissional inválido.")
		return nil, false
	}
	staffID := uint(id)
	return &staffID, true
}
