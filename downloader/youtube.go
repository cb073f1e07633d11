package downloader

import (
	"context"
	"io"

	"github.com/kkdai/youtube/v2"
)

type youtubeClient struct {
	client youtube.Client
}

// NewYouTubeClient wraps the kkdai extraction library behind YouTubeClient.
func NewYouTubeClient() YouTubeClient {
	return &youtubeClient{client: youtube.Client{}}
}

func (c *youtubeClient) GetVideo(ctx context.Context, url string) (*youtube.Video, error) {
	return c.client.GetVideoContext(ctx, url)
}

func (c *youtubeClient) GetStream(ctx context.Context, video *youtube.Video, format *youtube.Format) (io.ReadCloser, int64, error) {
	return c.client.GetStreamContext(ctx, video, format)
}
