package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yokinanya/omega-miya/internal/entity"
	"github.com/yokinanya/omega-miya/internal/omega"
)

// FriendshipHandler serves per-entity friendship counter endpoints.
type FriendshipHandler struct {
	svc *omega.Service
}

// NewFriendshipHandler constructs a FriendshipHandler.
func NewFriendshipHandler(svc *omega.Service) *FriendshipHandler {
	return &FriendshipHandler{svc: svc}
}

func (h *FriendshipHandler) bind(c *gin.Context) (*omega.Handle, bool) {
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

// Get returns the entity's counters, initializing a zeroed row when
// absent.
func (h *FriendshipHandler) Get(c *gin.Context) {
	handle, ok := h.bind(c)
	if !ok {
		return
	}
	row, errQuery := handle.Friendship(c.Request.Context())
	if errQuery != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query friendship"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":             row.Status,
		"mood":               row.Mood,
		"friendship":         row.Friendship,
		"energy":             row.Energy,
		"currency":           row.Currency,
		"response_threshold": row.ResponseThreshold,
	})
}

type changeFriendshipRequest struct {
	Status            *string `json:"status"`
	Mood              float64 `json:"mood"`
	Friendship        float64 `json:"friendship"`
	Energy            float64 `json:"energy"`
	Currency          float64 `json:"currency"`
	ResponseThreshold float64 `json:"response_threshold"`
}

// Change applies deltas to the entity's counters.
func (h *FriendshipHandler) Change(c *gin.Context) {
	handle, ok := h.bind(c)
	if !ok {
		return
	}
	var body changeFriendshipRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	errChange := handle.ChangeFriendship(
		c.Request.Context(), body.Status,
		body.Mood, body.Friendship, body.Energy, body.Currency, body.ResponseThreshold,
	)
	if errChange != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to change friendship"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": true})
}
