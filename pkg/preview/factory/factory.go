package factory

import (
	"fmt"
	"time"

	"music-match-be/pkg/preview"
	"music-match-be/pkg/preview/itunes"
	"music-match-be/pkg/preview/spotify"
)

// NewProvider selects the preview upstream by name. "itunes" needs no
// credentials and is the default.
func NewProvider(name, itunesBaseURL, spotifyClientID, spotifyClientSecret string, timeout time.Duration) (preview.Provider, error) {
	switch name {
	case "", "itunes":
		return itunes.NewProvider(itunesBaseURL, timeout), nil
	case "spotify":
		return spotify.NewProvider(spotifyClientID, spotifyClientSecret, timeout)
	default:
		return nil, fmt.Errorf("unknown preview provider: %s", name)
	}
}
