package cache

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"kpireview/internal/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetSet(t *testing.T) {
	c := NewCache(time.Minute)

	key := c.generateKey("payload")

	_, found := c.Get(key)
	assert.False(t, found)

	c.Set(key, []byte("cached"))

	data, found := c.Get(key)
	require.True(t, found)
	assert.Equal(t, []byte("cached"), data)
	assert.Equal(t, 1, c.Size())
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(10 * time.Millisecond)

	c.Set("key", []byte("value"))
	time.Sleep(30 * time.Millisecond)

	_, found := c.Get("key")
	assert.False(t, found)
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := NewCache(time.Minute)

	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))

	c.Delete("a")
	assert.Equal(t, 1, c.Size())

	c.Clear()
	assert.Zero(t, c.Size())
}

func TestCacheStats(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("a", []byte("1"))

	stats := c.Stats()
	assert.Equal(t, 1, stats["total_items"])
	assert.Equal(t, 0, stats["expired_items"])
	assert.Equal(t, 1, stats["active_items"])
	assert.Equal(t, 60.0, stats["ttl_seconds"])
}

func TestCacheMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c := NewCache(time.Minute)
	metrics := monitoring.NewMetrics()

	calls := 0
	r := gin.New()
	r.Use(c.Middleware(metrics))
	r.POST("/api/v1/evaluations/score", func(ctx *gin.Context) {
		calls++
		ctx.JSON(http.StatusOK, gin.H{"totalPoints": 100})
	})
	r.POST("/api/v1/evaluations/report", func(ctx *gin.Context) {
		calls++
		ctx.JSON(http.StatusOK, gin.H{"report": "x"})
	})

	post := func(path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("identical score payloads hit the cache", func(t *testing.T) {
		body := `{"ratings":{"1.1":"GOOD"}}`

		first := post("/api/v1/evaluations/score", body)
		assert.Equal(t, http.StatusOK, first.Code)

		second := post("/api/v1/evaluations/score", body)
		assert.Equal(t, http.StatusOK, second.Code)
		assert.Equal(t, first.Body.String(), second.Body.String())

		assert.Equal(t, 1, calls)
	})

	t.Run("different payload misses", func(t *testing.T) {
		calls = 0
		post("/api/v1/evaluations/score", `{"ratings":{"1.1":"WEAK"}}`)
		assert.Equal(t, 1, calls)
	})

	t.Run("other endpoints are never cached", func(t *testing.T) {
		calls = 0
		body := `{"ratings":{"1.1":"GOOD"}}`
		post("/api/v1/evaluations/report", body)
		post("/api/v1/evaluations/report", body)
		assert.Equal(t, 2, calls)
	})
}
