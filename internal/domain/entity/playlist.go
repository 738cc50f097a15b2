package entity

import "strings"

// DefaultPlaylistTitle is used when the intent service names neither a
// title nor a name for the playlist.
const DefaultPlaylistTitle = "Generated playlist"

// playlistIntents are the intents whose responses carry a playlist. Matching
// is case-insensitive.
var playlistIntents = []string{
	"playlist_from_prompt",
	"playlist",
}

// CanonicalPlaylist is the presentation view of a playlist, independent of
// which backend version produced it.
type CanonicalPlaylist struct {
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Tracks      []CanonicalTrack `json:"tracks"`
	Extra       Extra            `json:"-"`
}

// CanonicalTrack is the presentation view of a track.
type CanonicalTrack struct {
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Album      string `json:"album,omitempty"`
	SpotifyURL string `json:"spotifyUrl,omitempty"`
	PreviewURL string `json:"previewUrl,omitempty"`
	Extra      Extra  `json:"-"`
}

// IsPlaylistIntent reports whether intent is one that produces a playlist.
func IsPlaylistIntent(intent string) bool {
	intent = strings.TrimSpace(intent)
	for _, known := range playlistIntents {
		if strings.EqualFold(intent, known) {
			return true
		}
	}
	return false
}

// CanonicalPlaylist returns the normalized playlist, or nil when the intent
// does not produce one or the response carries no playlist. The response is
// not modified.
func (r *IntentResponse) CanonicalPlaylist() *CanonicalPlaylist {
	if r == nil || !IsPlaylistIntent(r.Intent) || r.Playlist == nil {
		return nil
	}

	p := r.Playlist
	out := &CanonicalPlaylist{
		Title:       fallbackIfEmpty(firstNonEmpty(deref(p.Title), deref(p.Name)), DefaultPlaylistTitle),
		Description: deref(p.Description),
		Tracks:      make([]CanonicalTrack, 0, len(p.Tracks)),
		Extra:       p.Extra.clone(),
	}
	for _, t := range p.Tracks {
		out.Tracks = append(out.Tracks, t.Canonical())
	}
	return out
}

// Canonical resolves the track's alternate field names. camelCase wins over
// snake_case when both are set.
func (t Track) Canonical() CanonicalTrack {
	return CanonicalTrack{
		Title:      deref(t.Title),
		Artist:     deref(t.Artist),
		Album:      deref(t.Album),
		SpotifyURL: firstNonEmpty(deref(t.SpotifyURL), deref(t.SpotifyURLSnake)),
		PreviewURL: firstNonEmpty(deref(t.PreviewURL), deref(t.PreviewURLSnake)),
		Extra:      t.Extra.clone(),
	}
}

func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return ""
}

func fallbackIfEmpty(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
