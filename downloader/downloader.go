// Package downloader resolves a submitted URL to a platform, drives the
// matching extraction library, and saves the resulting video file into the
// upload directory.
package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kkdai/youtube/v2"
	"gorm.io/gorm"

	"github.com/darkempire/vid/models"
	"github.com/darkempire/vid/utils"
)

var (
	// ErrUnsupportedSource is returned for URLs that match no known platform.
	ErrUnsupportedSource = errors.New("unsupported source url")
	// ErrNoStreamAvailable is returned when a YouTube video has no progressive mp4 stream.
	ErrNoStreamAvailable = errors.New("no suitable stream found")
	// ErrNoVideoURL is returned when an Instagram post carries no video.
	ErrNoVideoURL = errors.New("no video url found")
)

// YouTubeClient is the slice of the extraction library the fetcher needs.
type YouTubeClient interface {
	GetVideo(ctx context.Context, url string) (*youtube.Video, error)
	GetStream(ctx context.Context, video *youtube.Video, format *youtube.Format) (io.ReadCloser, int64, error)
}

// InstagramPost is the resolved metadata of a single Instagram post.
type InstagramPost struct {
	Shortcode string
	Title     string
	Caption   string
	VideoURL  string
}

// InstagramClient resolves a post shortcode and opens its video stream.
type InstagramClient interface {
	ResolvePost(ctx context.Context, shortcode string) (*InstagramPost, error)
	OpenVideo(ctx context.Context, videoURL string) (io.ReadCloser, error)
}

// Fetcher dispatches submitted URLs to the platform clients and writes the
// downloaded file under uploadDir. The Instagram path additionally records
// catalog metadata; the YouTube path does not write a record.
type Fetcher struct {
	db        *gorm.DB
	youtube   YouTubeClient
	instagram InstagramClient
	uploadDir string
}

// New builds a Fetcher wired to the real extraction clients.
func New(db *gorm.DB, uploadDir string) *Fetcher {
	return &Fetcher{
		db:        db,
		youtube:   NewYouTubeClient(),
		instagram: NewInstagramClient(),
		uploadDir: uploadDir,
	}
}

// Fetch downloads the video behind rawURL and returns the saved filename.
// Dispatch is evaluated in order against the URL text.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	switch {
	case strings.Contains(rawURL, "youtube.com/shorts"), strings.Contains(rawURL, "youtu.be"):
		return f.fetchYouTube(ctx, rawURL)
	case strings.Contains(rawURL, "instagram.com/reel"):
		return f.fetchInstagram(ctx, rawURL)
	default:
		return "", ErrUnsupportedSource
	}
}

func (f *Fetcher) fetchYouTube(ctx context.Context, rawURL string) (string, error) {
	video, err := f.youtube.GetVideo(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("resolve youtube video: %w", err)
	}

	format := pickProgressiveMP4(video.Formats)
	if format == nil {
		return "", ErrNoStreamAvailable
	}

	stream, _, err := f.youtube.GetStream(ctx, video, format)
	if err != nil {
		return "", fmt.Errorf("open youtube stream: %w", err)
	}
	defer stream.Close()

	filename := timestampName("youtube")
	if err := f.saveStream(stream, filename); err != nil {
		return "", err
	}
	return filename, nil
}

func (f *Fetcher) fetchInstagram(ctx context.Context, rawURL string) (string, error) {
	shortcode := shortcodeFromURL(rawURL)
	if shortcode == "" {
		return "", ErrUnsupportedSource
	}

	post, err := f.instagram.ResolvePost(ctx, shortcode)
	if err != nil {
		return "", fmt.Errorf("resolve instagram post: %w", err)
	}
	if post.VideoURL == "" {
		return "", ErrNoVideoURL
	}

	body, err := f.instagram.OpenVideo(ctx, post.VideoURL)
	if err != nil {
		return "", fmt.Errorf("open instagram video: %w", err)
	}
	defer body.Close()

	filename := timestampName("instagram")
	if err := f.saveStream(body, filename); err != nil {
		return "", err
	}

	record := models.Video{
		Filename:    filename,
		Title:       utils.Sanitize(post.Title),
		Description: utils.Sanitize(post.Caption),
		Date:        time.Now().Format("2006-01-02 15:04:05"),
	}
	if err := f.db.Create(&record).Error; err != nil {
		// The file is kept; only the metadata insert failed.
		return "", fmt.Errorf("record instagram video: %w", err)
	}
	utils.InvalidateByPrefix("cache:videos:")

	return filename, nil
}

// pickProgressiveMP4 returns the highest-resolution mp4 format that muxes
// audio and video together, or nil when none exists.
func pickProgressiveMP4(formats youtube.FormatList) *youtube.Format {
	candidates := formats.Type("video/mp4").WithAudioChannels()
	best := -1
	for i := range candidates {
		if candidates[i].Height == 0 {
			continue
		}
		if best == -1 || candidates[i].Height > candidates[best].Height {
			best = i
		}
	}
	if best == -1 {
		return nil
	}
	return &candidates[best]
}

// shortcodeFromURL extracts the post shortcode from a reel URL like
// https://instagram.com/reel/<shortcode>/.
func shortcodeFromURL(rawURL string) string {
	trimmed := rawURL
	for _, sep := range []string{"?", "#"} {
		if idx := strings.Index(trimmed, sep); idx >= 0 {
			trimmed = trimmed[:idx]
		}
	}
	segments := []string{}
	for _, seg := range strings.Split(trimmed, "/") {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	for i, seg := range segments {
		if (seg == "reel" || seg == "p") && i+1 < len(segments) {
			return segments[i+1]
		}
	}
	return ""
}

// timestampName stamps the file with the current date-time to avoid
// collisions between downloads. Two fetches within the same second still
// collide; that hazard is accepted.
func timestampName(prefix string) string {
	return fmt.Sprintf("%s_%s.mp4", prefix, time.Now().Format("20060102150405"))
}

func (f *Fetcher) saveStream(r io.Reader, filename string) error {
	path := filepath.Join(f.uploadDir, filename)
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}
