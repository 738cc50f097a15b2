package entity

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Extra holds JSON object members that have no typed field. They are kept as
// raw JSON so they survive a decode/encode round trip untouched.
type Extra map[string]json.RawMessage

// decodeObject unmarshals a JSON object, moving every key listed in known into
// its typed destination. A member whose value does not fit its destination
// type stays in the returned Extra instead of failing the whole decode, and so
// does a null member, leaving the destination unset.
func decodeObject(data []byte, known map[string]any) (Extra, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}

	for key, dst := range known {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		if isNull(raw) {
			continue
		}
		// Decode into a fresh value so a failed member leaves dst untouched.
		tmp := reflect.New(reflect.TypeOf(dst).Elem())
		if err := json.Unmarshal(raw, tmp.Interface()); err != nil {
			continue
		}
		reflect.ValueOf(dst).Elem().Set(tmp.Elem())
		delete(obj, key)
	}

	if len(obj) == 0 {
		return nil, nil
	}
	return obj, nil
}

// encodeObject merges the extension members with the known ones. A key found
// in both only happens when the typed decode failed, so the raw value wins.
func encodeObject(extra Extra, known map[string]any) ([]byte, error) {
	out := make(map[string]any, len(extra)+len(known))
	for k, v := range known {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return json.Marshal(out)
}

// decodeTracks decodes every element of a tracks array on its own. Elements
// that are not track objects are returned in invalid so one bad entry does not
// hide the others.
func decodeTracks(raw []json.RawMessage) (tracks []Track, invalid []json.RawMessage) {
	tracks = make([]Track, 0, len(raw))
	for _, el := range raw {
		var t Track
		if isNull(el) || json.Unmarshal(el, &t) != nil {
			invalid = append(invalid, el)
			continue
		}
		tracks = append(tracks, t)
	}
	return tracks, invalid
}

// encodeTracks rebuilds a tracks array, decoded tracks first. It returns nil
// when the array was absent.
func encodeTracks(tracks []Track, invalid []json.RawMessage) []any {
	if tracks == nil && invalid == nil {
		return nil
	}
	out := make([]any, 0, len(tracks)+len(invalid))
	for _, t := range tracks {
		out = append(out, t)
	}
	for _, raw := range invalid {
		out = append(out, raw)
	}
	return out
}

func putString(known map[string]any, key string, v *string) {
	if v != nil {
		known[key] = *v
	}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Get decodes the extension member key into dst. It reports false when the
// member is absent or does not decode.
func (e Extra) Get(key string, dst any) bool {
	raw, ok := e[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

func (e Extra) clone() Extra {
	if e == nil {
		return nil
	}
	out := make(Extra, len(e))
	for k, v := range e {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

// DecodePayload returns body as a json.RawMessage when it is valid JSON and
// as a plain string otherwise.
func DecodePayload(body []byte) any {
	if len(bytes.TrimSpace(body)) > 0 && json.Valid(body) {
		return json.RawMessage(body)
	}
	return string(body)
}
