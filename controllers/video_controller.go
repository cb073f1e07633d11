package controllers

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/darkempire/vid/downloader"
	"github.com/darkempire/vid/utils"
)

// Fetcher downloads the video behind a URL and returns the stored filename.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// VideoController handles URL submission and the public video views.
type VideoController struct {
	fetcher   Fetcher
	uploadDir string
}

// NewVideoController creates a VideoController.
func NewVideoController(fetcher Fetcher, uploadDir string) *VideoController {
	return &VideoController{fetcher: fetcher, uploadDir: uploadDir}
}

// Submit accepts a form-posted URL, runs the download synchronously, and
// redirects to the confirmation view. Failures come back as raw error text.
func (v *VideoController) Submit(ctx *gin.Context) {
	rawURL := strings.TrimSpace(ctx.PostForm("url"))
	if rawURL == "" {
		ctx.String(http.StatusBadRequest, "url is required")
		return
	}

	filename, err := v.fetcher.Fetch(ctx.Request.Context(), rawURL)
	if err != nil {
		utils.Sugar.Errorf("download failed url=%s err=%v", rawURL, err)
		status := http.StatusInternalServerError
		if errors.Is(err, downloader.ErrUnsupportedSource) {
			status = http.StatusBadRequest
		}
		ctx.String(status, err.Error())
		return
	}

	utils.InvalidateByPrefix("cache:videos:")
	ctx.Redirect(http.StatusSeeOther, "/uploads/"+filename)
}

// ListFiles returns the filenames currently present in the upload directory.
// This is a directory listing, not a catalog query.
func (v *VideoController) ListFiles(ctx *gin.Context) {
	const cacheKey = "cache:videos:files"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	entries, err := os.ReadDir(v.uploadDir)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to list uploads")
		return
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: gin.H{"videos": names}}
	utils.CacheSetJSON(cacheKey, wrapper, time.Minute)
	utils.Success(ctx, gin.H{"videos": names})
}

const uploadedPage = `<!DOCTYPE html>
<html>
<head><title>Download complete</title></head>
<body>
  <h1>Download complete</h1>
  <video controls width="640" src="/static/uploads/%s"></video>
  <p>%s</p>
  <p><a href="/">Download another</a> | <a href="/videos">All videos</a></p>
</body>
</html>`

// UploadedFile renders the confirmation/player view for a downloaded file.
func (v *VideoController) UploadedFile(ctx *gin.Context) {
	// Base strips any traversal fragments from the path parameter.
	filename := filepath.Base(ctx.Param("filename"))
	if filename == "." || filename == "/" {
		ctx.String(http.StatusBadRequest, "invalid filename")
		return
	}
	escaped := html.EscapeString(filename)
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fmt.Sprintf(uploadedPage, escaped, escaped)))
}
