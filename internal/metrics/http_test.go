package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("http_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "http_test"))
	router.GET("/v1/users/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": "user@example.com"})
	})
	router.POST("/v1/users/login", func(c *gin.Context) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	})
	router.GET("/v1/users/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})

	serve := func(method, target string) int {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(method, target, nil))
		return w.Code
	}

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(http.MethodGet, "/v1/users/me"))
	}
	assert.Equal(t, http.StatusUnauthorized, serve(http.MethodPost, "/v1/users/login"))
	assert.Equal(t, http.StatusOK, serve(http.MethodGet, "/v1/users/123"))
	assert.Equal(t, http.StatusOK, serve(http.MethodGet, "/v1/users/456"))
	assert.Equal(t, http.StatusNotFound, serve(http.MethodGet, "/nowhere"))

	output := scrape(t, provider)

	assertMetricLine(t, output, `http_test_http_requests_total`,
		`method="GET".*path="/v1/users/me".*status_code="200"`, `3`)
	assertMetricLine(t, output, `http_test_http_requests_total`,
		`method="POST".*path="/v1/users/login".*status_code="401"`, `1`)
	assertMetricLine(t, output, `http_test_http_requests_total`,
		`method="GET".*path="/v1/users/:id".*status_code="200"`, `2`)
	assertMetricLine(t, output, `http_test_http_requests_total`,
		`method="GET".*path="unknown".*status_code="404"`, `1`)
	assertMetricLine(t, output, `http_test_http_request_duration_seconds_count`,
		`method="GET".*path="/v1/users/me".*status_code="200"`, `3`)
	assert.Regexp(t, `http_test_http_requests_in_flight(\{[^}]*\})? 0`, output)
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "RoutePattern", input: "/v1/users/me", expected: "/v1/users/me"},
		{name: "EmptyPath", input: "", expected: "unknown"},
		{name: "RootPath", input: "/", expected: "/"},
		{name: "WildcardPath", input: "/static/*filepath", expected: "/static/*filepath"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizePath(tt.input))
		})
	}
}
