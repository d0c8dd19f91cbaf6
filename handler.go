package main

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/AndreKrottje-Dev/Gerda2/internal/catalog"
	"github.com/AndreKrottje-Dev/Gerda2/internal/health"
	"github.com/AndreKrottje-Dev/Gerda2/internal/store"
	"github.com/gin-gonic/gin"
)

// Handler holds shared dependencies (store, catalog, config) for all route handlers.
type Handler struct {
	store           store.Store
	catalog         *catalog.Catalog
	streakTolerance float64
	metrics         *instrumentation
	now             func() time.Time // overridable for tests
}

func newHandler(st store.Store, cat *catalog.Catalog, streakTolerance float64) *Handler {
	return &Handler{
		store:           st,
		catalog:         cat,
		streakTolerance: streakTolerance,
		metrics:         newInstrumentation(),
		now:             time.Now,
	}
}

/* ─── Response helpers ───────────────────────────────────────────────── */

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// storeError maps store and validation errors onto a response. Anything
// unexpected is logged and reported as a 500 with the given message.
func storeError(c *gin.Context, err error, notFound, internal string) {
	var verr *health.ValidationError
	switch {
	case errors.As(err, &verr):
		apiError(c, http.StatusBadRequest, verr.Error())
	case errors.Is(err, store.ErrNotFound):
		apiError(c, http.StatusNotFound, notFound)
	default:
		log.Printf("[%s] %v", c.FullPath(), err)
		apiError(c, http.StatusInternalServerError, internal)
	}
}

// today is the server's local calendar day.
func (h *Handler) today() string {
	return health.DateKey(h.now())
}

// dateParam reads ?date=YYYY-MM-DD, defaulting to today. It writes a 400 and
// returns ok=false when the value is malformed.
func (h *Handler) dateParam(c *gin.Context) (string, bool) {
	date := c.DefaultQuery("date", h.today())
	if err := health.ValidateDateKey(date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return "", false
	}
	return date, true
}

// loadProfile fetches the caller's profile, writing 404 when none exists.
func (h *Handler) loadProfile(c *gin.Context) (health.UserProfile, bool) {
	p, err := h.store.ReadProfile(c, c.GetInt("user_id"))
	if err != nil {
		storeError(c, err, "profile not found", "failed to fetch profile")
		return p, false
	}
	return p, true
}

/* ─── Routes ─────────────────────────────────────────────────────────── */

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	router.Use(h.metrics.middleware())

	// Public routes
	router.POST("/api/login", h.login)
	router.GET("/metrics", h.metrics.handler())

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.GET("/profile", h.getProfile)
	api.PUT("/profile", h.putProfile)
	api.GET("/metrics", h.getMetrics)
	api.DELETE("/data", h.clearData)

	api.GET("/daily-log", h.getDailyLog)
	api.POST("/daily-log/foods", h.addFood)
	api.DELETE("/daily-log/foods/:id", h.removeFood)
	api.POST("/daily-log/exercises", h.addExercise)
	api.DELETE("/daily-log/exercises/:id", h.removeExercise)
	api.PUT("/daily-log/weight", h.putWeight)
	api.PUT("/daily-log/water", h.putWater)

	api.GET("/coach", h.getCoach)
	api.GET("/streak", h.getStreak)
	api.POST("/streak/evaluate", h.evaluateStreak)
	api.GET("/progress", h.getProgress)

	api.GET("/catalog/foods", h.listCatalogFoods)
	api.GET("/catalog/exercises", h.listCatalogExercises)
}
