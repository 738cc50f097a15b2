package entity

import "encoding/json"

// IntentRequest is the body accepted by POST /api/intent.
type IntentRequest struct {
	Prompt    string `json:"prompt"`
	SessionID string `json:"sessionId,omitempty"`
}

// UpstreamRequest is the body sent to the intent service.
type UpstreamRequest struct {
	Text      string `json:"text"`
	SessionID string `json:"session_id,omitempty"`
}

// IntentResponse is the intent service answer. Backend versions disagree on
// field names, so alternates are kept side by side and unknown members are
// carried in Extra.
type IntentResponse struct {
	Intent           string
	Query            string
	Entities         map[string]any
	Playlist         *RawPlaylist
	Tracks           []Track
	InvalidTracks    []json.RawMessage
	Confidence       *float64
	Answer           string
	AssistantMessage string
	Reply            string
	Extra            Extra
}

func (r *IntentResponse) UnmarshalJSON(data []byte) error {
	var out IntentResponse
	var tracks []json.RawMessage
	extra, err := decodeObject(data, map[string]any{
		"intent":            &out.Intent,
		"query":             &out.Query,
		"entities":          &out.Entities,
		"playlist":          &out.Playlist,
		"tracks":            &tracks,
		"confidence":        &out.Confidence,
		"answer":            &out.Answer,
		"assistant_message": &out.AssistantMessage,
		"reply":             &out.Reply,
	})
	if err != nil {
		return err
	}
	if tracks != nil {
		out.Tracks, out.InvalidTracks = decodeTracks(tracks)
	}
	out.Extra = extra
	*r = out
	return nil
}

func (r IntentResponse) MarshalJSON() ([]byte, error) {
	known := map[string]any{"intent": r.Intent}
	if r.Query != "" {
		known["query"] = r.Query
	}
	if r.Entities != nil {
		known["entities"] = r.Entities
	}
	if r.Playlist != nil {
		known["playlist"] = r.Playlist
	}
	if tracks := encodeTracks(r.Tracks, r.InvalidTracks); tracks != nil {
		known["tracks"] = tracks
	}
	if r.Confidence != nil {
		known["confidence"] = *r.Confidence
	}
	if r.Answer != "" {
		known["answer"] = r.Answer
	}
	if r.AssistantMessage != "" {
		known["assistant_message"] = r.AssistantMessage
	}
	if r.Reply != "" {
		known["reply"] = r.Reply
	}
	return encodeObject(r.Extra, known)
}

// Message returns the free-text reply of non-playlist intents, whichever of
// the backend's names carries it.
func (r *IntentResponse) Message() string {
	return firstNonEmpty(r.AssistantMessage, r.Reply, r.Answer)
}

// Entity returns a recognized slot (artist, genre, mood...) as a string.
func (r *IntentResponse) Entity(slot string) string {
	v, ok := r.Entities[slot].(string)
	if !ok {
		return ""
	}
	return v
}

// RawPlaylist is the playlist object as sent by the intent service. Tracks
// holds the entries that decoded; anything else in the array is kept in
// InvalidTracks and re-emitted after them.
type RawPlaylist struct {
	Title         *string
	Name          *string
	Description   *string
	Tracks        []Track
	InvalidTracks []json.RawMessage
	Extra         Extra
}

func (p *RawPlaylist) UnmarshalJSON(data []byte) error {
	var out RawPlaylist
	var tracks []json.RawMessage
	extra, err := decodeObject(data, map[string]any{
		"title":       &out.Title,
		"name":        &out.Name,
		"description": &out.Description,
		"tracks":      &tracks,
	})
	if err != nil {
		return err
	}
	if tracks != nil {
		out.Tracks, out.InvalidTracks = decodeTracks(tracks)
	}
	out.Extra = extra
	*p = out
	return nil
}

func (p RawPlaylist) MarshalJSON() ([]byte, error) {
	known := map[string]any{}
	if tracks := encodeTracks(p.Tracks, p.InvalidTracks); tracks != nil {
		known["tracks"] = tracks
	}
	putString(known, "title", p.Title)
	putString(known, "name", p.Name)
	putString(known, "description", p.Description)
	return encodeObject(p.Extra, known)
}

// Track is a single track as sent by the intent service. Newer backends use
// camelCase URLs, older ones snake_case. A nil field was absent from the
// input and is not re-emitted.
type Track struct {
	Title           *string
	Artist          *string
	Album           *string
	SpotifyURL      *string
	SpotifyURLSnake *string
	PreviewURL      *string
	PreviewURLSnake *string
	Extra           Extra
}

func (t *Track) UnmarshalJSON(data []byte) error {
	var out Track
	extra, err := decodeObject(data, map[string]any{
		"title":       &out.Title,
		"artist":      &out.Artist,
		"album":       &out.Album,
		"spotifyUrl":  &out.SpotifyURL,
		"spotify_url": &out.SpotifyURLSnake,
		"previewUrl":  &out.PreviewURL,
		"preview_url": &out.PreviewURLSnake,
	})
	if err != nil {
		return err
	}
	out.Extra = extra
	*t = out
	return nil
}

func (t Track) MarshalJSON() ([]byte, error) {
	known := map[string]any{}
	putString(known, "title", t.Title)
	putString(known, "artist", t.Artist)
	putString(known, "album", t.Album)
	putString(known, "spotifyUrl", t.SpotifyURL)
	putString(known, "spotify_url", t.SpotifyURLSnake)
	putString(known, "previewUrl", t.PreviewURL)
	putString(known, "preview_url", t.PreviewURLSnake)
	return encodeObject(t.Extra, known)
}

// ParseIntentResponse decodes an intent service payload.
func ParseIntentResponse(data []byte) (*IntentResponse, error) {
	var resp IntentResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
