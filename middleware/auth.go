package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/darkempire/vid/utils"
)

const (
	// SessionCookieName is the browser cookie carrying the opaque session token.
	SessionCookieName = "session"
	// ContextUserIDKey is the key used to store the authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
)

// SessionRequired gates admin-only routes. A missing or dead session
// redirects to the login page instead of failing the request.
func SessionRequired(sessions *utils.SessionStore) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(SessionCookieName)
		if err != nil || token == "" {
			ctx.Redirect(http.StatusFound, "/login")
			ctx.Abort()
			return
		}

		userID, ok := sessions.Authorize(token)
		if !ok {
			ctx.Redirect(http.StatusFound, "/login")
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserIDKey, userID)
		ctx.Next()
	}
}
