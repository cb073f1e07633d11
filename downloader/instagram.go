package downloader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const instagramUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

type instagramClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewInstagramClient returns a client that resolves posts through Instagram's
// public JSON endpoint. No outbound timeout is applied; cancellation comes
// from the request context.
func NewInstagramClient() InstagramClient {
	return &instagramClient{
		httpClient: &http.Client{},
		baseURL:    "https://www.instagram.com",
	}
}

// shortcodeMedia mirrors the subset of the GraphQL payload we consume.
type shortcodeMedia struct {
	IsVideo            bool   `json:"is_video"`
	VideoURL           string `json:"video_url"`
	Title              string `json:"title"`
	EdgeMediaToCaption struct {
		Edges []struct {
			Node struct {
				Text string `json:"text"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"edge_media_to_caption"`
}

func (c *instagramClient) ResolvePost(ctx context.Context, shortcode string) (*InstagramPost, error) {
	endpoint := fmt.Sprintf("%s/p/%s/?__a=1&__d=dis", c.baseURL, url.PathEscape(shortcode))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", instagramUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("instagram returned status %d for shortcode %s", resp.StatusCode, shortcode)
	}

	var payload struct {
		GraphQL struct {
			ShortcodeMedia shortcodeMedia `json:"shortcode_media"`
		} `json:"graphql"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode instagram response: %w", err)
	}

	media := payload.GraphQL.ShortcodeMedia
	caption := ""
	if len(media.EdgeMediaToCaption.Edges) > 0 {
		caption = media.EdgeMediaToCaption.Edges[0].Node.Text
	}

	post := &InstagramPost{
		Shortcode: shortcode,
		Title:     media.Title,
		Caption:   caption,
	}
	if media.IsVideo {
		post.VideoURL = media.VideoURL
	}
	return post, nil
}

func (c *instagramClient) OpenVideo(ctx context.Context, videoURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, videoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", instagramUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("instagram video fetch returned status %d", resp.StatusCode)
	}
	return resp.Body, nil
}
