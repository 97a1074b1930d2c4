package music

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Joelrtharakan/boredom-breaker/backend/internal/config"
	musicmodel "github.com/Joelrtharakan/boredom-breaker/backend/internal/model/music"
)

const (
	tokenURL  = "https://accounts.spotify.com/api/token"
	searchURL = "https://api.spotify.com/v1/search"
)

// Service looks up mood-matched playlists. Missing credentials or any API
// failure degrade to a single deterministic mock record keyed by mood, so
// callers never see an error.
type Service struct {
	clientID     string
	clientSecret string
	client       *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewService wires the catalog from configuration.
func NewService(cfg config.SpotifyConfig) *Service {
	if !cfg.Enabled() {
		log.Printf("[spotify] credentials not set, serving mock playlists")
	}
	return &Service{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		client:       &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether real credentials are configured.
func (s *Service) Enabled() bool {
	return s.clientID != "" && s.clientSecret != ""
}

// MoodPlaylists returns up to limit playlists for the mood keyword.
func (s *Service) MoodPlaylists(ctx context.Context, mood string, limit int) []musicmodel.Playlist {
	if limit <= 0 {
		limit = 12
	}
	if !s.Enabled() {
		return mockPlaylists(mood)
	}

	playlists, err := s.search(ctx, mood, limit)
	if err != nil {
		log.Printf("[spotify] search failed for mood %q: %v", mood, err)
		return mockPlaylists(mood)
	}
	if len(playlists) == 0 {
		return mockPlaylists(mood)
	}
	return playlists
}

// PlaylistForMood returns the top recommendation used for plan enrichment.
func (s *Service) PlaylistForMood(ctx context.Context, mood string) (musicmodel.Playlist, bool) {
	playlists := s.MoodPlaylists(ctx, mood, 1)
	if len(playlists) == 0 {
		return musicmodel.Playlist{}, false
	}
	return playlists[0], true
}

func (s *Service) search(ctx context.Context, mood string, limit int) ([]musicmodel.Playlist, error) {
	token, err := s.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	query := mood + " chill"
	if mood == "energize" || mood == "focus" {
		query = mood + " energy"
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "playlist")
	params.Set("limit", fmt.Sprintf("%d", limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("search returned status %d: %s", resp.StatusCode, string(payload))
	}

	var result struct {
		Playlists struct {
			Items []struct {
				Name   string `json:"name"`
				URI    string `json:"uri"`
				Images []struct {
					URL string `json:"url"`
				} `json:"images"`
				ExternalURLs struct {
					Spotify string `json:"spotify"`
				} `json:"external_urls"`
				Tracks struct {
					Total int `json:"total"`
				} `json:"tracks"`
				Description string `json:"description"`
			} `json:"items"`
		} `json:"playlists"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	playlists := make([]musicmodel.Playlist, 0, len(result.Playlists.Items))
	for _, item := range result.Playlists.Items {
		if item.Name == "" {
			continue
		}
		image := "https://via.placeholder.com/300"
		if len(item.Images) > 0 {
			image = item.Images[0].URL
		}
		playlists = append(playlists, musicmodel.Playlist{
			Name:        item.Name,
			URI:         item.URI,
			Image:       image,
			TracksCount: item.Tracks.Total,
			ExternalURL: item.ExternalURLs.Spotify,
			Description: item.Description,
		})
	}
	return playlists, nil
}

// accessToken runs the client-credentials flow, caching the token until
// shortly before expiry.
func (s *Service) accessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && time.Now().Before(s.tokenExpiry) {
		return s.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.SetBasicAuth(s.clientID, s.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token endpoint returned status %d: %s", resp.StatusCode, string(payload))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned an empty token")
	}

	s.token = result.AccessToken
	s.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn-30) * time.Second)
	return s.token, nil
}

// mockPlaylists is the deterministic offline fallback keyed by mood.
func mockPlaylists(mood string) []musicmodel.Playlist {
	return []musicmodel.Playlist{
		{
			Name:        titleCase(mood) + " Vibes",
			URI:         "spotify:playlist:37i9dQZF1DXcBWIGoYBM5M",
			Image:       "https://source.unsplash.com/random/400x400/?music",
			TracksCount: 50,
			Description: "Mock Data",
		},
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
