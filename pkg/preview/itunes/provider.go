package itunes

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"music-match-be/pkg/preview"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://itunes.apple.com"

// Provider resolves preview snippets from the iTunes Search API by
// term lookup (track name + primary artist). No credentials required.
type Provider struct {
	client *resty.Client
}

func NewProvider(baseURL string, timeout time.Duration) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)
	return &Provider{client: client}
}

func (p *Provider) Name() string {
	return "itunes"
}

type searchResponse struct {
	ResultCount int `json:"resultCount"`
	Results     []struct {
		PreviewURL    string `json:"previewUrl"`
		ArtworkURL100 string `json:"artworkUrl100"`
	} `json:"results"`
}

func (p *Provider) LookupPreview(ctx context.Context, track preview.TrackInfo) (*preview.Metadata, error) {
	term := strings.TrimSpace(track.Name)
	if len(track.Artists) > 0 {
		term = strings.TrimSpace(term + " " + strings.TrimSpace(track.Artists[0]))
	}
	if term == "" {
		return nil, nil
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"media": "music",
			"limit": "1",
			"term":  term,
		}).
		Get("/search")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("itunes search returned status %d", resp.StatusCode())
	}

	var payload searchResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, err
	}
	if len(payload.Results) == 0 {
		return &preview.Metadata{Source: "itunes-empty"}, nil
	}

	result := payload.Results[0]
	meta := &preview.Metadata{Source: "itunes"}
	if result.ArtworkURL100 != "" {
		art := result.ArtworkURL100
		meta.AlbumArtURL = &art
	}
	if result.PreviewURL == "" {
		meta.Source = "itunes-missing"
		return meta, nil
	}
	url := result.PreviewURL
	meta.PreviewURL = &url
	return meta, nil
}
