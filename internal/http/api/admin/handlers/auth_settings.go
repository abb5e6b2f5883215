package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yokinanya/omega-miya/internal/entity"
	"github.com/yokinanya/omega-miya/internal/models"
	"github.com/yokinanya/omega-miya/internal/omega"
)

// AuthSettingsHandler serves per-entity permission node endpoints.
type AuthSettingsHandler struct {
	svc *omega.Service
}

// NewAuthSettingsHandler constructs an AuthSettingsHandler.
func NewAuthSettingsHandler(svc *omega.Service) *AuthSettingsHandler {
	return &AuthSettingsHandler{svc: svc}
}

type authSettingResponse struct {
	Module    string `json:"module"`
	Plugin    string `json:"plugin"`
	Node      string `json:"node"`
	Available int    `json:"available"`
	Value     string `json:"value"`
}

func toAuthSettingResponse(row models.AuthSetting) authSettingResponse {
	return authSettingResponse{
		Module:    row.Module,
		Plugin:    row.Plugin,
		Node:      row.Node,
		Available: row.Available,
		Value:     row.Value,
	}
}

func (h *AuthSettingsHandler) bind(c *gin.Context) (*omega.Handle, bool) {
	id, ok := parseIndexID(c)
	if !ok {
		return nil, false
	}
	handle, errBind := h.svc.BindIndexID(c.Request.Context(), id)
	if errors.Is(errBind, entity.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "entity not found"})
		return nil, false
	}
	if errBind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query entity"})
		return nil, false
	}
	return handle, true
}

// List returns the entity's stored nodes, optionally narrowed to one
// module/plugin pair.
func (h *AuthSettingsHandler) List(c *gin.Context) {
	handle, ok := h.bind(c)
	if !ok {
		return
	}
	module := c.Query("module")
	plugin := c.Query("plugin")

	var (
		rows    []models.AuthSetting
		errList error
	)
	if module != "" && plugin != "" {
		rows, errList = handle.PluginAuthSettings(c.Request.Context(), module, plugin)
	} else {
		rows, errList = handle.AllAuthSettings(c.Request.Context())
	}
	if errList != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list auth settings"})
		return
	}
	out := make([]authSettingResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toAuthSettingResponse(row))
	}
	c.JSON(http.StatusOK, gin.H{"auth_settings": out})
}

type putAuthSettingRequest struct {
	Module    string `json:"module"`
	Plugin    string `json:"plugin"`
	Node      string `json:"node"`
	Available int    `json:"available"`
	Value     string `json:"value"`
}

// Put creates or overwrites one node.
func (h *AuthSettingsHandler) Put(c *gin.Context) {
	handle, ok := h.bind(c)
	if !ok {
		return
	}
	var body putAuthSettingRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if body.Module == "" || body.Plugin == "" || body.Node == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "module, plugin and node are required"})
		return
	}
	if errSet := handle.SetAuthSetting(c.Request.Context(), body.Module, body.Plugin, body.Node, body.Available, body.Value); errSet != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store auth setting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stored": true})
}

// Delete removes one node. Missing rows delete cleanly.
func (h *AuthSettingsHandler) Delete(c *gin.Context) {
	handle, ok := h.bind(c)
	if !ok {
		return
	}
	module := c.Query("module")
	plugin := c.Query("plugin")
	node := c.Query("node")
	if module == "" || plugin == "" || node == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "module, plugin and node are required"})
		return
	}
	if errDelete := handle.DeleteAuthSetting(c.Request.Context(), module, plugin, node); errDelete != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete auth setting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
