package googlebooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrVolumeNotFound means the catalog has no entry for the ISBN.
var ErrVolumeNotFound = errors.New("volume not found in catalog")

// Metadata is the subset of volume info the listing flow needs.
type Metadata struct {
	Title      string   `json:"title"`
	Author     string   `json:"author"`
	CoverURL   *string  `json:"cover_url,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// Client calls the Google Books volumes API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// volumesResponse mirrors the wire format of GET /volumes?q=isbn:<isbn>.
type volumesResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Title      string   `json:"title"`
			Authors    []string `json:"authors"`
			Categories []string `json:"categories"`
			ImageLinks struct {
				Thumbnail      string `json:"thumbnail"`
				SmallThumbnail string `json:"smallThumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Lookup resolves an ISBN to title/author/cover metadata.
// Returns ErrVolumeNotFound when the catalog has no match.
func (c *Client) Lookup(ctx context.Context, isbn string) (*Metadata, error) {
	endpoint := fmt.Sprintf("%s/volumes?q=%s", c.baseURL, url.QueryEscape("isbn:"+isbn))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var payload volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}

	if payload.TotalItems == 0 || len(payload.Items) == 0 {
		return nil, ErrVolumeNotFound
	}

	info := payload.Items[0].VolumeInfo

	meta := &Metadata{
		Title:      info.Title,
		Author:     strings.Join(info.Authors, ", "),
		Categories: info.Categories,
	}
	if meta.Title == "" {
		meta.Title = "Unknown Title"
	}
	if meta.Author == "" {
		meta.Author = "Unknown Author"
	}

	if info.ImageLinks.Thumbnail != "" {
		meta.CoverURL = &info.ImageLinks.Thumbnail
	} else if info.ImageLinks.SmallThumbnail != "" {
		meta.CoverURL = &info.ImageLinks.SmallThumbnail
	}

	return meta, nil
}
