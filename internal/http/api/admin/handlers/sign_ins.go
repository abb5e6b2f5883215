package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yokinanya/omega-miya/internal/entity"
	"github.com/yokinanya/omega-miya/internal/omega"
)

// SignInsHandler serves per-entity sign-in endpoints.
type SignInsHandler struct {
	svc *omega.Service
}

// NewSignInsHandler constructs a SignInsHandler.
func NewSignInsHandler(svc *omega.Service) *SignInsHandler {
	return &SignInsHandler{svc: svc}
}

const signInDateLayout = "2006-01-02"

func (h *SignInsHandler) bind(c *gin.Context) (*omega.Handle, bool) {
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

// Stats returns the entity's sign-in statistics: total days, current
// streak, last missed day and whether today is already signed.
func (h *SignInsHandler) Stats(c *gin.Context) {
	handle, ok := h.bind(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	days, errDays := handle.SignInDays(ctx)
	if errDays != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query sign-ins"})
		return
	}
	streak, errStreak := handle.ContinuousSignInDays(ctx)
	if errStreak != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute streak"})
		return
	}
	missed, errMissed := handle.LastMissingSignInDay(ctx)
	if errMissed != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute missed day"})
		return
	}
	signedToday, errSigned := handle.CheckTodaySignIn(ctx)
	if errSigned != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query sign-ins"})
		return
	}

	out := make([]string, 0, len(days))
	for _, day := range days {
		out = append(out, day.Format(signInDateLayout))
	}
	c.JSON(http.StatusOK, gin.H{
		"total_days":      len(days),
		"continuous_days": streak,
		"last_missed_day": missed.Format(signInDateLayout),
		"signed_today":    signedToday,
		"days":            out,
	})
}

type fixSignInRequest struct {
	Date string `json:"date"`
}

// Fix records attendance for the entity: today when no date is given,
// otherwise a backfill for the named day.
func (h *SignInsHandler) Fix(c *gin.Context) {
	handle, ok := h.bind(c)
	if !ok {
		return
	}
	var body fixSignInRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	ctx := c.Request.Context()
	if body.Date == "" {
		if errSignIn := handle.SignIn(ctx); errSignIn != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record sign-in"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"recorded": true})
		return
	}

	day, errParse := time.ParseInLocation(signInDateLayout, body.Date, time.Local)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
		return
	}
	if errSignIn := handle.SignInOnDate(ctx, day); errSignIn != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record sign-in"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recorded": true})
}

// Delete removes the record for one day.
func (h *SignInsHandler) Delete(c *gin.Context) {
	handle, ok := h.bind(c)
	if !ok {
		return
	}
	day, errParse := time.ParseInLocation(signInDateLayout, c.Param("date"), time.Local)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
		return
	}
	if errDelete := h.svc.SignIns().Delete(c.Request.Context(), handle.IndexID(), day); errDelete != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete sign-in"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
