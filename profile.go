package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/AndreKrottje-Dev/Gerda2/internal/health"
	"github.com/AndreKrottje-Dev/Gerda2/internal/store"
	"github.com/gin-gonic/gin"
)

// getProfile returns the caller's profile.
// GET /api/profile. 404 until the user has completed onboarding.
func (h *Handler) getProfile(c *gin.Context) {
	p, ok := h.loadProfile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, p)
}

// putProfile validates and replaces the profile wholesale.
// PUT /api/profile.
func (h *Handler) putProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body profileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	p := health.UserProfile{
		Name:            strings.TrimSpace(body.Name),
		Age:             body.Age,
		Gender:          health.Gender(body.Gender),
		HeightCM:        body.HeightCM,
		CurrentWeightKG: body.CurrentWeightKG,
		TargetWeightKG:  body.TargetWeightKG,
		ActivityLevel:   health.ActivityLevel(body.ActivityLevel),
		CreatedAt:       h.now().UTC(),
	}
	if err := health.ValidateProfile(p); err != nil {
		storeError(c, err, "", "")
		return
	}

	existing, err := h.store.ReadProfile(c, userID)
	switch {
	case err == nil:
		p.CreatedAt = existing.CreatedAt
	case !errors.Is(err, store.ErrNotFound):
		storeError(c, err, "", "failed to fetch profile")
		return
	}

	if err := h.store.WriteProfile(c, userID, p); err != nil {
		storeError(c, err, "", "failed to save profile")
		return
	}
	c.JSON(http.StatusOK, p)
}

// getMetrics runs the calculator over the stored profile.
// GET /api/metrics. 404 when there is no profile; nothing is computed.
func (h *Handler) getMetrics(c *gin.Context) {
	p, ok := h.loadProfile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, metricsResponse{Metrics: health.ComputeMetrics(p), Profile: p})
}

// clearData drops the profile, all logs and the streak. The account and its
// token survive so the user can onboard again.
// DELETE /api/data.
func (h *Handler) clearData(c *gin.Context) {
	if err := h.store.ClearUserData(c, c.GetInt("user_id")); err != nil {
		storeError(c, err, "", "failed to clear data")
		return
	}
	c.Status(http.StatusNoContent)
}
