package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/darkempire/vid/middleware"
	"github.com/darkempire/vid/models"
	"github.com/darkempire/vid/utils"
)

// AuthController handles registration, login, and logout for admin accounts.
type AuthController struct {
	db       *gorm.DB
	sessions *utils.SessionStore
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB, sessions *utils.SessionStore) *AuthController {
	return &AuthController{db: db, sessions: sessions}
}

// Register creates a local account with a bcrypt password hash. A duplicate
// username leaves no partial record and surfaces as a conflict flash.
func (a *AuthController) Register(ctx *gin.Context) {
	username := strings.TrimSpace(ctx.PostForm("username"))
	password := ctx.PostForm("password")

	if username == "" || password == "" {
		utils.SetFlash(ctx, "Username and password are required.")
		ctx.Redirect(http.StatusFound, "/register")
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		utils.SetFlash(ctx, "Registration failed.")
		ctx.Redirect(http.StatusFound, "/register")
		return
	}

	user := models.User{Username: username, PasswordHash: hash}
	if err := a.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.SetFlash(ctx, "Username already exists.")
		} else {
			utils.Sugar.Errorf("register failed username=%s err=%v", username, err)
			utils.SetFlash(ctx, "Registration failed.")
		}
		ctx.Redirect(http.StatusFound, "/register")
		return
	}

	utils.SetFlash(ctx, "Registration successful, please login.")
	ctx.Redirect(http.StatusFound, "/login")
}

// Login verifies credentials and starts a session. Unknown username and wrong
// password produce the same observable outcome.
func (a *AuthController) Login(ctx *gin.Context) {
	username := strings.TrimSpace(ctx.PostForm("username"))
	password := ctx.PostForm("password")

	var user models.User
	err := a.db.Where("username = ?", username).First(&user).Error
	if err != nil || !utils.CheckPassword(user.PasswordHash, password) {
		utils.SetFlash(ctx, "Invalid username or password")
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	token := a.sessions.Start(user.ID)
	ctx.SetCookie(middleware.SessionCookieName, token, 0, "/", "", false, true)
	ctx.Redirect(http.StatusFound, "/admin")
}

// Logout ends the session; logging out twice is harmless.
func (a *AuthController) Logout(ctx *gin.Context) {
	if token, err := ctx.Cookie(middleware.SessionCookieName); err == nil {
		a.sessions.End(token)
	}
	ctx.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	ctx.Redirect(http.StatusFound, "/login")
}
