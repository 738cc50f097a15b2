package entity

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestIntentResponse_PassThrough(t *testing.T) {
	body := `{
		"intent": "playlist",
		"query": "sad lofi",
		"entities": {"mood": "sad", "genre": "lofi", "era": "90s"},
		"confidence": 0.92,
		"model_version": "v7",
		"recommendations": [{"id": 1}],
		"playlist": {"title": "Lofi", "cover": "c.jpg", "tracks": [{"title": "A", "artist": "B", "spotify_url": "s", "imageUrl": "i"}]}
	}`

	resp, err := ParseIntentResponse([]byte(body))
	if err != nil {
		t.Fatalf("ParseIntentResponse: %v", err)
	}

	if resp.Intent != "playlist" || resp.Query != "sad lofi" {
		t.Fatalf("unexpected known fields: %+v", resp)
	}
	if resp.Confidence == nil || *resp.Confidence != 0.92 {
		t.Fatalf("expected confidence 0.92, got %v", resp.Confidence)
	}
	if resp.Entity("mood") != "sad" {
		t.Fatalf("expected mood entity sad, got %q", resp.Entity("mood"))
	}
	if _, ok := resp.Extra["model_version"]; !ok {
		t.Fatal("expected model_version in extra fields")
	}

	out, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var want, got map[string]any
	if err := json.Unmarshal([]byte(body), &want); err != nil {
		t.Fatalf("decode want: %v", err)
	}
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode got: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("round trip lost data\nwant %v\ngot  %v", want, got)
	}
}

func TestIntentResponse_TolerantDecode(t *testing.T) {
	// confidence has the wrong type and playlist is not an object; both are
	// kept as raw members instead of failing the decode.
	body := `{"intent":"playlist","confidence":"high","playlist":["a","b"]}`

	resp, err := ParseIntentResponse([]byte(body))
	if err != nil {
		t.Fatalf("ParseIntentResponse: %v", err)
	}
	if resp.Confidence != nil {
		t.Fatalf("expected nil confidence, got %v", *resp.Confidence)
	}
	if resp.Playlist != nil {
		t.Fatalf("expected nil playlist, got %+v", resp.Playlist)
	}
	if resp.CanonicalPlaylist() != nil {
		t.Fatal("expected no canonical playlist")
	}

	out, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["confidence"] != "high" {
		t.Fatalf("expected raw confidence kept, got %v", got["confidence"])
	}
	if _, ok := got["playlist"].([]any); !ok {
		t.Fatalf("expected raw playlist kept, got %v", got["playlist"])
	}
}

func TestIntentResponse_Message(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "assistant_message", body: `{"intent":"answer","assistant_message":"hi","reply":"r"}`, want: "hi"},
		{name: "reply", body: `{"intent":"answer","reply":"r","answer":"a"}`, want: "r"},
		{name: "answer", body: `{"intent":"answer","answer":"a"}`, want: "a"},
		{name: "none", body: `{"intent":"answer"}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ParseIntentResponse([]byte(tt.body))
			if err != nil {
				t.Fatalf("ParseIntentResponse: %v", err)
			}
			if got := resp.Message(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseIntentResponse_RejectsNonObject(t *testing.T) {
	for _, body := range []string{`"plain text"`, `[1,2]`, `not json`} {
		if _, err := ParseIntentResponse([]byte(body)); err == nil {
			t.Fatalf("expected error for %s", body)
		}
	}
}

func TestDecodePayload(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantJSON bool
	}{
		{name: "object", body: `{"a":1}`, wantJSON: true},
		{name: "array", body: `[1]`, wantJSON: true},
		{name: "plain text", body: `upstream exploded`, wantJSON: false},
		{name: "empty", body: ``, wantJSON: false},
		{name: "truncated", body: `{"a":`, wantJSON: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodePayload([]byte(tt.body))
			switch v := got.(type) {
			case json.RawMessage:
				if !tt.wantJSON {
					t.Fatalf("expected raw text, got JSON %s", v)
				}
				if string(v) != tt.body {
					t.Fatalf("expected body unchanged, got %s", v)
				}
			case string:
				if tt.wantJSON {
					t.Fatalf("expected JSON, got text %q", v)
				}
				if v != tt.body {
					t.Fatalf("expected %q, got %q", tt.body, v)
				}
			default:
				t.Fatalf("unexpected payload type %T", got)
			}
		})
	}
}
