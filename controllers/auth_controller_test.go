package controllers

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/darkempire/vid/models"
	"github.com/darkempire/vid/utils"
)

func newAuthRig(t *testing.T) (*gin.Engine, *gorm.DB, *utils.SessionStore) {
	t.Helper()
	db := newTestDB(t)
	sessions := utils.NewSessionStore(time.Hour)
	auth := NewAuthController(db, sessions)

	r := gin.New()
	r.POST("/register", auth.Register)
	r.POST("/login", auth.Login)
	r.GET("/logout", auth.Logout)
	return r, db, sessions
}

func TestRegisterAndLogin(t *testing.T) {
	r, db, sessions := newAuthRig(t)

	w := postForm(r, "/register", url.Values{"username": {"alice"}, "password": {"s3cret"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Equal(t, "Registration successful, please login.", flashValue(w))

	var user models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&user).Error)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	w = postForm(r, "/login", url.Values{"username": {"alice"}, "password": {"s3cret"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))

	c := sessionCookie(w)
	require.NotNil(t, c)
	assert.True(t, c.HttpOnly)
	userID, ok := sessions.Authorize(c.Value)
	require.True(t, ok)
	assert.Equal(t, user.ID, userID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r, db, _ := newAuthRig(t)

	w := postForm(r, "/register", url.Values{"username": {"bob"}, "password": {"one"}})
	require.Equal(t, http.StatusFound, w.Code)

	w = postForm(r, "/register", url.Values{"username": {"bob"}, "password": {"two"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/register", w.Header().Get("Location"))
	assert.Equal(t, "Username already exists.", flashValue(w))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "bob").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegisterMissingFields(t *testing.T) {
	r, db, _ := newAuthRig(t)

	w := postForm(r, "/register", url.Values{"username": {""}, "password": {"pw"}})
	assert.Equal(t, "/register", w.Header().Get("Location"))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

// Unknown username and wrong password must be indistinguishable.
func TestLoginFailuresLookAlike(t *testing.T) {
	r, _, _ := newAuthRig(t)

	w := postForm(r, "/register", url.Values{"username": {"carol"}, "password": {"right"}})
	require.Equal(t, http.StatusFound, w.Code)

	wrongPass := postForm(r, "/login", url.Values{"username": {"carol"}, "password": {"wrong"}})
	noUser := postForm(r, "/login", url.Values{"username": {"nobody"}, "password": {"wrong"}})

	assert.Equal(t, wrongPass.Code, noUser.Code)
	assert.Equal(t, wrongPass.Header().Get("Location"), noUser.Header().Get("Location"))
	assert.Equal(t, flashValue(wrongPass), flashValue(noUser))
	assert.Equal(t, "Invalid username or password", flashValue(wrongPass))
	assert.Nil(t, sessionCookie(wrongPass))
	assert.Nil(t, sessionCookie(noUser))
}

func TestLogoutEndsSession(t *testing.T) {
	r, _, sessions := newAuthRig(t)

	token := sessions.Start(7)
	w := get(r, "/logout", &http.Cookie{Name: "session", Value: token})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	_, ok := sessions.Authorize(token)
	assert.False(t, ok)

	// Logging out again, or with no cookie at all, is harmless.
	w = get(r, "/logout")
	assert.Equal(t, http.StatusFound, w.Code)
}
