package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentimeter/internal/core/domain"
	"sentimeter/internal/core/ports"
	"sentimeter/internal/platform/errors"
	"sentimeter/internal/platform/resilience"
)

func TestAnalysisMetrics_OnAnalysis(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAnalysisMetrics(reg)

	a := domain.NewAnalysis("great", "func", nil, domain.Verdict{
		Sentiment: domain.SentimentPositive,
		Stars:     5,
		Tier:      domain.ConfidenceVeryHigh,
	})
	a.Duration = 200 * time.Millisecond

	m.OnAnalysis(a)
	m.OnAnalysis(a)
	m.OnAnalysis(nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AnalysesTotal.WithLabelValues("positive", "very_high")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.StarsTotal.WithLabelValues("5")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.AnalysisDuration))
}

func TestAnalysisMetrics_OnFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAnalysisMetrics(reg)

	m.OnFailure(ports.StageValidate, domain.ErrEmptyText)
	m.OnFailure(ports.StageClassify, errors.Wrap(errors.ErrServiceUnavailable, "model loading"))
	m.OnFailure(ports.StageClassify, context.DeadlineExceeded)
	m.OnFailure(ports.StageInterpret, domain.ErrUnrecognizedLabel)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FailuresTotal.WithLabelValues("validate", "invalid_input")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FailuresTotal.WithLabelValues("classify", "unavailable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FailuresTotal.WithLabelValues("classify", "timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FailuresTotal.WithLabelValues("interpret", "internal")))
}

func TestBreakerMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBreakerMetrics(reg)

	m.Init("classifier")
	assert.Equal(t, 0.0, testutil.ToFloat64(m.State.WithLabelValues("classifier")))

	m.OnStateChange("classifier", resilience.StateClosed, resilience.StateOpen)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.State.WithLabelValues("classifier")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StateChanges.WithLabelValues("classifier", "open")))

	m.OnStateChange("classifier", resilience.StateOpen, resilience.StateHalfOpen)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.State.WithLabelValues("classifier")))
}

func TestBreakerMetrics_WiredToCircuitBreaker(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBreakerMetrics(reg)

	cb := resilience.NewCircuitBreaker(resilience.Settings{
		Name:             "classifier",
		FailureThreshold: 1,
		Timeout:          time.Minute,
		OnStateChange:    m.OnStateChange,
	})

	err := cb.Execute(func() error { return errors.ErrServiceUnavailable })
	require.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.State.WithLabelValues("classifier")))
}

func TestHTTPMetrics_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/api/v1/analyze", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodPost, "/api/v1/analyze", nil),
		httptest.NewRequest(http.MethodGet, "/healthz", nil),
		httptest.NewRequest(http.MethodGet, "/missing", nil),
	} {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("POST", "/api/v1/analyze", "400")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.InFlightGauge))
	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestsTotal), "healthz is not recorded")
}

func TestHandler(t *testing.T) {
	reg := NewRegistry()
	m := NewAnalysisMetrics(reg)
	m.OnFailure(ports.StageClassify, errors.ErrRateLimit)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `sentimeter_analysis_failures_total{kind="rate_limit",stage="classify"} 1`))
	assert.Contains(t, body, "go_goroutines")
}
