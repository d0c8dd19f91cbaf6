package main

import (
	"net/http"

	"github.com/AndreKrottje-Dev/Gerda2/internal/store"
	"github.com/gin-gonic/gin"
)

// getStreak returns the stored streak (zeros before the first evaluation).
// GET /api/streak.
func (h *Handler) getStreak(c *gin.Context) {
	st, err := h.store.ReadStreak(c, c.GetInt("user_id"))
	if err != nil {
		storeError(c, err, "", "failed to fetch streak")
		return
	}
	c.JSON(http.StatusOK, st)
}

// evaluateStreak scores a day against the goal and advances the streak. A
// day that was already evaluated (or lies before the last evaluated day)
// leaves the streak as it is and reports changed=false. Days after today
// are rejected with 400.
// POST /api/streak/evaluate?date=YYYY-MM-DD (defaults to today).
func (h *Handler) evaluateStreak(c *gin.Context) {
	date, ok := h.dateParam(c)
	if !ok {
		return
	}
	ev, err := store.EvaluateDay(c, h.store, c.GetInt("user_id"), date, h.today(), h.streakTolerance)
	if err != nil {
		storeError(c, err, "profile not found", "failed to update streak")
		return
	}
	if ev.Changed {
		h.metrics.streakEvaluations.WithLabelValues(string(ev.Balance.Status(h.streakTolerance))).Inc()
	}
	c.JSON(http.StatusOK, ev)
}
