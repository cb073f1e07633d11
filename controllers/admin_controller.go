package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/darkempire/vid/models"
	"github.com/darkempire/vid/utils"
)

// AdminController manages the session-guarded catalog CRUD surface.
type AdminController struct {
	db *gorm.DB
}

// NewAdminController creates an AdminController.
func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{db: db}
}

// List returns every catalog record, restricted ones included.
func (a *AdminController) List(ctx *gin.Context) {
	const cacheKey = "cache:videos:admin"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var videos []models.Video
	if err := a.db.Order("id ASC").Find(&videos).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to list videos")
		return
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: gin.H{"videos": videos}}
	utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	utils.Success(ctx, gin.H{"videos": videos})
}

// Mutate handles the admin form: a `delete` field removes a record, an
// `update` field replaces the mutable columns. Both are silent no-ops when
// the id does not exist; the filename column is never touched.
func (a *AdminController) Mutate(ctx *gin.Context) {
	idStr := ctx.PostForm("video_id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id < 1 {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid video_id")
		return
	}

	switch {
	case ctx.PostForm("delete") != "":
		if err := a.db.Delete(&models.Video{}, id).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50051, "failed to delete video")
			return
		}

	case ctx.PostForm("update") != "":
		updates := models.Video{
			Title:       utils.Sanitize(ctx.PostForm("title")),
			Description: utils.Sanitize(ctx.PostForm("description")),
			Date:        ctx.PostForm("date"),
			Restricted:  ctx.PostForm("restricted") != "",
		}
		// Select forces a full replace of the mutable fields, zero values included.
		if err := a.db.Model(&models.Video{}).Where("id = ?", id).
			Select("title", "description", "date", "restricted").
			Updates(updates).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50052, "failed to update video")
			return
		}

	default:
		utils.Error(ctx, http.StatusBadRequest, 40051, "expected delete or update")
		return
	}

	utils.InvalidateByPrefix("cache:videos:")
	ctx.Redirect(http.StatusSeeOther, "/admin")
}
