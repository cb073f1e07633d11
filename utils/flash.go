package utils

import "github.com/gin-gonic/gin"

const flashCookieName = "flash"

// SetFlash stores a one-shot message in a short-lived cookie. The front-end
// pages read and clear it on load. Gin query-escapes the cookie value, so the
// message goes in raw and the pages decode exactly once.
func SetFlash(ctx *gin.Context, message string) {
	ctx.SetCookie(flashCookieName, message, 60, "/", "", false, false)
}
