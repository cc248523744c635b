package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntakeMetrics(t *testing.T) {
	registry := NewRegistry()
	m := NewIntakeMetrics(registry).(*intakeMetrics)

	m.ObserveSubmission(KindOrder, "accepted", 20*time.Millisecond)
	m.ObserveSubmission(KindOrder, "accepted", 30*time.Millisecond)
	m.IncStepFailure(KindMessage, "notify")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissions.WithLabelValues(KindOrder, "accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stepFailures.WithLabelValues(KindMessage, "notify")))
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	registry := NewRegistry()
	m := NewHTTPMetrics(registry)

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/api/admin/orders/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	router.GET("/metrics", gin.WrapH(Handler(registry)))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/orders/123", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/admin/orders/:id", "204")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
