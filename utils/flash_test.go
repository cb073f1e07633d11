package utils

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The pages decode the flash cookie exactly once, so a single unescape of the
// wire value must yield the original message, punctuation and spaces intact.
func TestSetFlashDecodesOnce(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const message = "Registration successful, please login."

	r := gin.New()
	r.GET("/", func(ctx *gin.Context) {
		SetFlash(ctx, message)
		ctx.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var raw string
	for _, c := range w.Result().Cookies() {
		if c.Name == "flash" {
			raw = c.Value
		}
	}
	require.NotEmpty(t, raw)

	decoded, err := url.QueryUnescape(raw)
	require.NoError(t, err)
	assert.Equal(t, message, decoded)
}
