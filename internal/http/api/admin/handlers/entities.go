package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yokinanya/omega-miya/internal/entity"
	"github.com/yokinanya/omega-miya/internal/models"
	"github.com/yokinanya/omega-miya/internal/omega"
)

// EntitiesHandler serves the entity registry endpoints.
type EntitiesHandler struct {
	svc *omega.Service
}

// NewEntitiesHandler constructs an EntitiesHandler.
func NewEntitiesHandler(svc *omega.Service) *EntitiesHandler {
	return &EntitiesHandler{svc: svc}
}

type entityResponse struct {
	ID         uint64 `json:"id"`
	BotIndexID uint64 `json:"bot_index_id"`
	EntityID   string `json:"entity_id"`
	EntityType string `json:"entity_type"`
	ParentID   string `json:"parent_id"`
	EntityName string `json:"entity_name"`
	EntityInfo string `json:"entity_info"`
}

func toEntityResponse(row models.Entity) entityResponse {
	return entityResponse{
		ID:         row.ID,
		BotIndexID: row.BotIndexID,
		EntityID:   row.EntityID,
		EntityType: row.EntityType,
		ParentID:   row.ParentID,
		EntityName: row.EntityName,
		EntityInfo: row.EntityInfo,
	}
}

func parseIndexID(c *gin.Context) (uint64, bool) {
	id, errParse := strconv.ParseUint(c.Param("id"), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entity id"})
		return 0, false
	}
	return id, true
}

// List returns registered entities, optionally filtered by type.
func (h *EntitiesHandler) List(c *gin.Context) {
	var (
		rows    []models.Entity
		errList error
	)
	if rawType := c.Query("type"); rawType != "" {
		entityType, errParse := entity.ParseType(rawType)
		if errParse != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errParse.Error()})
			return
		}
		rows, errList = h.svc.Entities().ListByType(c.Request.Context(), entityType)
	} else {
		rows, errList = h.svc.Entities().ListAll(c.Request.Context())
	}
	if errList != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list entities"})
		return
	}

	out := make([]entityResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toEntityResponse(row))
	}
	c.JSON(http.StatusOK, gin.H{"entities": out})
}

// Get returns one entity by index ID.
func (h *EntitiesHandler) Get(c *gin.Context) {
	id, ok := parseIndexID(c)
	if !ok {
		return
	}
	row, errGet := h.svc.Entities().GetByIndexID(c.Request.Context(), id)
	if errors.Is(errGet, entity.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "entity not found"})
		return
	}
	if errGet != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query entity"})
		return
	}
	c.JSON(http.StatusOK, toEntityResponse(*row))
}

// Delete removes one entity by index ID.
func (h *EntitiesHandler) Delete(c *gin.Context) {
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
	if errDelete := handle.Delete(c.Request.Context()); errDelete != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete entity"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListWithNode returns entities holding one auth node at the required
// level. strict=false treats the level as a floor.
func (h *EntitiesHandler) ListWithNode(c *gin.Context) {
	module := c.Query("module")
	plugin := c.Query("plugin")
	node := c.Query("node")
	if module == "" || plugin == "" || node == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "module, plugin and node are required"})
		return
	}
	required := 1
	if rawRequired := c.Query("available"); rawRequired != "" {
		parsed, errParse := strconv.Atoi(rawRequired)
		if errParse != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid available value"})
			return
		}
		required = parsed
	}
	strict := c.DefaultQuery("strict", "true") != "false"

	rows, errList := h.svc.Entities().ListWithAuthNode(c.Request.Context(), module, plugin, node, required, strict)
	if errList != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list entities"})
		return
	}
	out := make([]entityResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toEntityResponse(row))
	}
	c.JSON(http.StatusOK, gin.H{"entities": out})
}

// ListBots returns every bot currently marked online.
func (h *EntitiesHandler) ListBots(c *gin.Context) {
	rows, errList := h.svc.Bots().ListOnlineBots(c.Request.Context())
	if errList != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bots"})
		return
	}
	type botResponse struct {
		ID      uint64 `json:"id"`
		SelfID  string `json:"self_id"`
		BotType string `json:"bot_type"`
		Status  int    `json:"status"`
	}
	out := make([]botResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, botResponse{ID: row.ID, SelfID: row.SelfID, BotType: row.BotType, Status: row.Status})
	}
	c.JSON(http.StatusOK, gin.H{"bots": out})
}
