package main

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// instrumentation owns a private registry so each Handler (and each test)
// gets its own counters.
type instrumentation struct {
	registry          *prometheus.Registry
	requests          *prometheus.CounterVec
	entriesLogged     *prometheus.CounterVec
	coachFeedback     *prometheus.CounterVec
	streakEvaluations *prometheus.CounterVec
}

func newInstrumentation() *instrumentation {
	reg := prometheus.NewRegistry()
	m := &instrumentation{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gerda_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		entriesLogged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gerda_entries_logged_total",
			Help: "Daily log writes by kind (food, exercise, weight, water).",
		}, []string{"kind"}),
		coachFeedback: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gerda_coach_feedback_total",
			Help: "Coach responses by category.",
		}, []string{"category"}),
		streakEvaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gerda_streak_evaluations_total",
			Help: "Streak evaluations that changed the streak, by day status.",
		}, []string{"status"}),
	}
	reg.MustRegister(m.requests, m.entriesLogged, m.coachFeedback, m.streakEvaluations)
	return m
}

// middleware counts requests by matched route, so path params don't explode
// label cardinality.
func (m *instrumentation) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// handler exposes the registry at GET /metrics.
func (m *instrumentation) handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
