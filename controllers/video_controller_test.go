package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkempire/vid/downloader"
)

type stubFetcher struct {
	filename string
	err      error
	gotURL   string
}

func (s *stubFetcher) Fetch(_ context.Context, rawURL string) (string, error) {
	s.gotURL = rawURL
	return s.filename, s.err
}

func newVideoRig(t *testing.T, fetcher Fetcher) (*gin.Engine, string) {
	t.Helper()
	dir := t.TempDir()
	v := NewVideoController(fetcher, dir)

	r := gin.New()
	r.POST("/", v.Submit)
	r.GET("/videos", v.ListFiles)
	r.GET("/uploads/:filename", v.UploadedFile)
	return r, dir
}

func TestSubmitRedirectsToUploadedFile(t *testing.T) {
	fetcher := &stubFetcher{filename: "youtube_20240101120000.mp4"}
	r, _ := newVideoRig(t, fetcher)

	w := postForm(r, "/", url.Values{"url": {"https://youtu.be/abc123"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/uploads/youtube_20240101120000.mp4", w.Header().Get("Location"))
	assert.Equal(t, "https://youtu.be/abc123", fetcher.gotURL)
}

func TestSubmitMissingURL(t *testing.T) {
	fetcher := &stubFetcher{}
	r, _ := newVideoRig(t, fetcher)

	w := postForm(r, "/", url.Values{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, fetcher.gotURL)
}

func TestSubmitUnsupportedSource(t *testing.T) {
	r, _ := newVideoRig(t, &stubFetcher{err: downloader.ErrUnsupportedSource})

	w := postForm(r, "/", url.Values{"url": {"https://example.com/clip"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), downloader.ErrUnsupportedSource.Error())
}

func TestSubmitDownloadFailure(t *testing.T) {
	r, _ := newVideoRig(t, &stubFetcher{err: errors.New("stream collapsed")})

	w := postForm(r, "/", url.Values{"url": {"https://youtu.be/abc123"}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "stream collapsed")
}

func TestListFilesSkipsDirectories(t *testing.T) {
	r, dir := newVideoRig(t, &stubFetcher{})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.mp4"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.mp4"), []byte("y"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	w := get(r, "/videos")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Videos []string `json:"videos"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.ElementsMatch(t, []string{"a.mp4", "b.mp4"}, resp.Data.Videos)
}

func TestUploadedFileEscapesFilename(t *testing.T) {
	r, _ := newVideoRig(t, &stubFetcher{})

	w := get(r, "/uploads/"+url.PathEscape(`<img src=x>.mp4`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<img")
	assert.Contains(t, w.Body.String(), "&lt;img")
}

func TestUploadedFileStripsTraversal(t *testing.T) {
	r, _ := newVideoRig(t, &stubFetcher{})

	w := get(r, "/uploads/"+url.PathEscape("../../etc/passwd"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "..")
	assert.Contains(t, w.Body.String(), "passwd")
}
