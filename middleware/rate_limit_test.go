package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedEngine(perMinute int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimitMiddleware(perMinute), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})
	return r
}

func hitFrom(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// At two requests per minute the bucket holds one token, so the second
// immediate request is rejected.
func TestRateLimitExhaustsBurst(t *testing.T) {
	r := newLimitedEngine(2)

	first := hitFrom(r, "10.1.2.3:1000")
	assert.Equal(t, http.StatusOK, first.Code)

	second := hitFrom(r, "10.1.2.3:1000")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "rate limit exceeded")
}

func TestRateLimitIsPerIP(t *testing.T) {
	r := newLimitedEngine(2)

	blocked := hitFrom(r, "10.4.5.6:1000")
	assert.Equal(t, http.StatusOK, blocked.Code)
	blocked = hitFrom(r, "10.4.5.6:1000")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)

	// A different client still has its own token.
	other := hitFrom(r, "10.7.8.9:1000")
	assert.Equal(t, http.StatusOK, other.Code)
}
