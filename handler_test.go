package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/AndreKrottje-Dev/Gerda2/internal/catalog"
	"github.com/AndreKrottje-Dev/Gerda2/internal/health"
	"github.com/AndreKrottje-Dev/Gerda2/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testToken = "test-token"

// testProfile: BMR 1780, TDEE round(1780*1.55)=2759, goal 2259 (losing).
const testProfile = `{"name":"Sam","age":30,"gender":"male","height_cm":180,
	"current_weight_kg":80,"target_weight_kg":75,"activity_level":"moderate"}`

// testServer wires a Handler to a fresh SQLite store with one user whose
// token is testToken. The clock is pinned to 2024-03-01 UTC.
type testServer struct {
	router *gin.Engine
	h      *Handler
	store  *store.SQLite
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.OpenSQLite(filepath.Join(t.TempDir(), "gerda.db"))
	require.NoError(t, err)
	t.Cleanup(st.Close)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = st.CreateUser(context.Background(), store.User{
		Username: "sam", PasswordHash: string(hash), AuthToken: testToken,
	})
	require.NoError(t, err)

	cat, err := catalog.Load()
	require.NoError(t, err)

	h := newHandler(st, cat, health.DefaultStreakTolerance)
	h.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	router := gin.New()
	h.registerRoutes(router)
	return &testServer{router: router, h: h, store: st}
}

// do sends an authenticated request and returns the recorder.
func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+testToken)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, w)["error"]
}

/* ─── Auth ───────────────────────────────────────────────────────────── */

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	login := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		return w
	}

	w := login(`{"username":"sam","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, testToken, decode[map[string]any](t, w)["token"])

	assert.Equal(t, http.StatusUnauthorized, login(`{"username":"sam","password":"wrong"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, login(`{"username":"nobody","password":"secret"}`).Code)
	assert.Equal(t, http.StatusBadRequest, login(`not json`).Code)
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/streak", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest("GET", "/api/streak", nil)
	req.Header.Set("Authorization", "Bearer nope")
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid token", errorMessage(t, w))
}

/* ─── Profile & metrics ──────────────────────────────────────────────── */

func TestMetrics_NoProfile(t *testing.T) {
	s := newTestServer(t)

	w := s.do("GET", "/api/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "profile not found", errorMessage(t, w))

	assert.Equal(t, http.StatusNotFound, s.do("GET", "/api/profile", "").Code)
}

func TestProfile_PutAndMetrics(t *testing.T) {
	s := newTestServer(t)

	w := s.do("PUT", "/api/profile", testProfile)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do("GET", "/api/metrics", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	m := decode[health.Metrics](t, w)
	assert.Equal(t, 24.7, m.BMI)
	assert.Equal(t, health.Healthy, m.BMICategory)
	assert.Equal(t, 1780, m.BMR)
	assert.Equal(t, 2759, m.TDEE)
	assert.Equal(t, 2259, m.CalorieGoal)
	assert.Equal(t, 5.0, m.WeightToGoKG)

	raw := decode[map[string]any](t, s.do("GET", "/api/metrics", ""))
	for _, key := range []string{"bmi", "bmi_category", "bmr", "tdee", "calorie_goal", "activity_label", "weight_to_go"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, 5.0, raw["weight_to_go"])
}

func TestProfile_KeepsCreatedAt(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do("PUT", "/api/profile", testProfile).Code)
	first := decode[health.UserProfile](t, s.do("GET", "/api/profile", ""))

	s.h.now = func() time.Time { return time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC) }
	updated := strings.Replace(testProfile, `"current_weight_kg":80`, `"current_weight_kg":78`, 1)
	require.Equal(t, http.StatusOK, s.do("PUT", "/api/profile", updated).Code)

	second := decode[health.UserProfile](t, s.do("GET", "/api/profile", ""))
	assert.Equal(t, 78.0, second.CurrentWeightKG)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
}

func TestProfile_Validation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name  string
		from  string
		to    string
		field string
	}{
		{"age too low", `"age":30`, `"age":5`, "age"},
		{"bad gender", `"gender":"male"`, `"gender":"x"`, "gender"},
		{"zero height", `"height_cm":180`, `"height_cm":0`, "height_cm"},
		{"bad activity", `"activity_level":"moderate"`, `"activity_level":"extreme"`, "activity_level"},
		{"empty name", `"name":"Sam"`, `"name":" "`, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do("PUT", "/api/profile", strings.Replace(testProfile, tt.from, tt.to, 1))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.True(t, strings.HasPrefix(errorMessage(t, w), tt.field+" "), w.Body.String())
		})
	}

	// Nothing was stored.
	assert.Equal(t, http.StatusNotFound, s.do("GET", "/api/profile", "").Code)
}

func TestClearData(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do("PUT", "/api/profile", testProfile).Code)
	require.Equal(t, http.StatusCreated, s.do("POST", "/api/daily-log/foods", `{"food_id":"brk_018"}`).Code)

	assert.Equal(t, http.StatusNoContent, s.do("DELETE", "/api/data", "").Code)
	assert.Equal(t, http.StatusNotFound, s.do("GET", "/api/profile", "").Code)

	w := s.do("GET", "/api/daily-log", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[dailyLogResponse](t, w).Foods)
}

/* ─── Catalog & instrumentation ──────────────────────────────────────── */

func TestCatalogEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do("GET", "/api/catalog/foods?category=snacks&q=apple", "")
	require.Equal(t, http.StatusOK, w.Code)
	foods := decode[[]catalogFood](t, w)
	require.Len(t, foods, 1)
	assert.Equal(t, "very healthy", foods[0].HealthLabel)

	w = s.do("GET", "/api/catalog/exercises?category=relaxation", "")
	require.Equal(t, http.StatusOK, w.Code)
	for _, e := range decode[[]catalog.ExerciseActivity](t, w) {
		assert.Equal(t, "relaxation", e.Category)
	}

	w = s.do("GET", "/api/catalog/foods?q=zzz", "")
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestPrometheusEndpoint(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusOK, s.do("PUT", "/api/profile", testProfile).Code)
	require.Equal(t, http.StatusCreated, s.do("POST", "/api/daily-log/foods", `{"food_id":"brk_018"}`).Code)
	require.Equal(t, http.StatusOK, s.do("GET", "/api/coach", "").Code)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `gerda_entries_logged_total{kind="food"} 1`)
	assert.Contains(t, body, `gerda_coach_feedback_total{category=`)
	assert.Contains(t, body, `gerda_http_requests_total{code="201",route="/api/daily-log/foods"} 1`)
}
