package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestMetrics_DomainCounters(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.EntryCreated()
	m.PaymentRecorded("success")
	m.PaymentRecorded("failed")
	m.PaymentRecorded("failed")
	m.QualificationSettled(true)
	m.QualificationSettled(false)

	body := scrape(t, m)
	assert.Contains(t, body, "skillprize_entries_created_total 1")
	assert.Contains(t, body, `skillprize_payments_recorded_total{outcome="failed"} 2`)
	assert.Contains(t, body, `skillprize_qualifications_settled_total{result="passed"} 1`)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.EntryCreated()
		m.PaymentRecorded("success")
		m.QualificationSettled(true)
	})
}

func TestMetrics_MiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics(prometheus.NewRegistry())

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `skillprize_http_requests_total{method="GET",route="/ping",status="200"} 1`))
}
