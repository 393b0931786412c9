package monitoring

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.IncrementRequest()
	m.IncrementRequest()
	m.IncrementError()
	m.IncrementCacheHit()
	m.IncrementCacheMiss()
	m.IncrementScoringRun()
	m.IncrementReportRun()

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats["request_count"])
	assert.Equal(t, int64(1), stats["error_count"])
	assert.Equal(t, int64(1), stats["cache_hits"])
	assert.Equal(t, int64(1), stats["cache_misses"])
	assert.Equal(t, int64(1), stats["scoring_runs"])
	assert.Equal(t, int64(1), stats["report_runs"])
}

func TestMetricsRateLimitStats(t *testing.T) {
	m := NewMetrics()

	m.IncrementRateLimitIPBlock()
	m.IncrementRateLimitRedisError()
	m.IncrementRateLimitFallback()
	m.IncrementRateLimitFallback()

	stats := m.GetRateLimitStats()
	assert.Equal(t, int64(1), stats["ip_blocks"])
	assert.Equal(t, int64(1), stats["redis_errors"])
	assert.Equal(t, int64(2), stats["fallback_count"])
}

func TestMetricsPercentiles(t *testing.T) {
	m := NewMetrics()

	assert.Equal(t, time.Duration(0), m.GetPercentileResponseTime(95))

	for i := 1; i <= 100; i++ {
		m.RecordResponseTime(time.Duration(i) * time.Millisecond)
	}

	p95 := m.GetPercentileResponseTime(95)
	assert.GreaterOrEqual(t, p95, 90*time.Millisecond)
	assert.LessOrEqual(t, p95, 100*time.Millisecond)

	p50 := m.GetPercentileResponseTime(50)
	assert.Less(t, p50, p95)
}

func TestMetricsStatusDistribution(t *testing.T) {
	m := NewMetrics()

	m.RecordRequestByStatus(200)
	m.RecordRequestByStatus(200)
	m.RecordRequestByStatus(404)

	dist := m.GetStatusCodeDistribution()
	assert.Equal(t, int64(2), dist[200])
	assert.Equal(t, int64(1), dist[404])
}

func TestMetricsConcurrentAccess(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncrementRequest()
			m.RecordResponseTime(time.Millisecond)
			m.RecordRequestByStatus(200)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), m.GetStats()["request_count"])
}

func TestMonitoringMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	metrics := NewMetrics()
	logger := NewLogger()

	r := gin.New()
	r.Use(MonitoringMiddleware(metrics, logger))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	get := func(path string) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", path, nil)
		r.ServeHTTP(w, req)
	}

	get("/ok")
	get("/missing")

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats["request_count"])
	assert.Equal(t, int64(1), stats["error_count"])

	dist := metrics.GetStatusCodeDistribution()
	require.Equal(t, int64(1), dist[200])
	require.Equal(t, int64(1), dist[404])
}
