package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yokinanya/omega-miya/internal/entity"
	"github.com/yokinanya/omega-miya/internal/omega"
)

// CooldownsHandler serves cooldown inspection and maintenance endpoints.
type CooldownsHandler struct {
	svc *omega.Service
}

// NewCooldownsHandler constructs a CooldownsHandler.
func NewCooldownsHandler(svc *omega.Service) *CooldownsHandler {
	return &CooldownsHandler{svc: svc}
}

// Check reports one cooldown event's state for an entity. Unset events
// read as expired.
func (h *CooldownsHandler) Check(c *gin.Context) {
	id, ok := parseIndexID(c)
	if !ok {
		return
	}
	handle, errBind := h.svc.BindIndexID(c.Request.Context(), id)
	if errors.Is(errBind, entity.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "entity not found"})
		return
	}
	if errBind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query entity"})
		return
	}

	event := c.Param("event")
	expired, stopAt, errCheck := handle.CheckCooldownExpired(c.Request.Context(), event)
	if errCheck != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query cooldown"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"event":   event,
		"expired": expired,
		"stop_at": stopAt.Format(time.RFC3339),
	})
}

// Purge deletes every expired cooldown row.
func (h *CooldownsHandler) Purge(c *gin.Context) {
	deleted, errPurge := h.svc.Cooldowns().PurgeExpired(c.Request.Context())
	if errPurge != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to purge cooldowns"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
