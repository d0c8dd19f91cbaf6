package main

import (
	"net/http"

	"github.com/AndreKrottje-Dev/Gerda2/internal/health"
	"github.com/gin-gonic/gin"
)

// getCoach classifies one day for the coach panel.
// GET /api/coach?date=YYYY-MM-DD (defaults to today). 404 without a profile.
func (h *Handler) getCoach(c *gin.Context) {
	date, ok := h.dateParam(c)
	if !ok {
		return
	}
	p, ok := h.loadProfile(c)
	if !ok {
		return
	}
	dayLog, err := h.store.ReadDailyLog(c, c.GetInt("user_id"), date)
	if err != nil {
		storeError(c, err, "", "failed to fetch daily log")
		return
	}

	fb := health.Coach(dayLog, p)
	h.metrics.coachFeedback.WithLabelValues(string(fb.Category)).Inc()
	c.JSON(http.StatusOK, gin.H{"date": date, "feedback": fb})
}
