package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"music-match-be/pkg/preview"

	"github.com/go-resty/resty/v2"
)

const (
	tokenURL  = "https://accounts.spotify.com/api/token"
	tracksURL = "https://api.spotify.com/v1/tracks"
)

// Provider resolves preview metadata from the Spotify Web API using the
// client-credentials flow. The app token is cached until shortly before
// expiry.
type Provider struct {
	clientID     string
	clientSecret string
	client       *resty.Client

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

func NewProvider(clientID, clientSecret string, timeout time.Duration) (*Provider, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("spotify credentials are not configured")
	}
	return &Provider{
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       resty.New().SetTimeout(timeout),
	}, nil
}

func (p *Provider) Name() string {
	return "spotify"
}

type trackResponse struct {
	PreviewURL *string `json:"preview_url"`
	Album      struct {
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
	} `json:"album"`
}

func (p *Provider) LookupPreview(ctx context.Context, track preview.TrackInfo) (*preview.Metadata, error) {
	token, err := p.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		Get(fmt.Sprintf("%s/%s", tracksURL, track.Id))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == 404 {
		return &preview.Metadata{Source: "spotify-unknown"}, nil
	}
	if resp.IsError() {
		return nil, fmt.Errorf("spotify track lookup returned status %d", resp.StatusCode())
	}

	var payload trackResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, err
	}

	meta := &preview.Metadata{Source: "spotify"}
	if len(payload.Album.Images) > 0 && payload.Album.Images[0].URL != "" {
		art := payload.Album.Images[0].URL
		meta.AlbumArtURL = &art
	}
	if payload.PreviewURL == nil || *payload.PreviewURL == "" {
		meta.Source = "spotify-missing"
		return meta, nil
	}
	meta.PreviewURL = payload.PreviewURL
	return meta, nil
}

func (p *Provider) getAccessToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Refresh 30 seconds early
	if p.accessToken != "" && time.Now().Before(p.expiresAt.Add(-30*time.Second)) {
		return p.accessToken, nil
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetBasicAuth(p.clientID, p.clientSecret).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetBody("grant_type=client_credentials").
		Post(tokenURL)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("spotify token request returned status %d", resp.StatusCode())
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return "", err
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("spotify token payload missing access_token")
	}
	if payload.ExpiresIn == 0 {
		payload.ExpiresIn = 3600
	}

	p.accessToken = payload.AccessToken
	p.expiresAt = time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	return p.accessToken, nil
}
