package music

// Playlist is one catalog record returned by the music provider.
type Playlist struct {
	Name        string `json:"name"`
	URI         string `json:"uri"`
	Image       string `json:"image"`
	TracksCount int    `json:"tracks_count"`
	ExternalURL string `json:"external_url,omitempty"`
	Description string `json:"description,omitempty"`
}
