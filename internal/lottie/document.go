package lottie

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ivlev/alive2json/internal/converr"
)

// FormatName tags errors raised while reading Lottie documents.
const FormatName = "lottie"

// Document is the subset of a Bodymovin export the adapter reads.
type Document struct {
	Version   string   `json:"v"`
	FrameRate *float64 `json:"fr"`
	InPoint   float64  `json:"ip"`
	OutPoint  float64  `json:"op"`
	Width     float64  `json:"w"`
	Height    float64  `json:"h"`
	Name      string   `json:"nm"`
	ThreeD    int      `json:"ddd"`
	Layers    []Layer  `json:"layers"`
	Assets    []Asset  `json:"assets"`
}

type Asset struct {
	ID     string  `json:"id"`
	Width  float64 `json:"w"`
	Height float64 `json:"h"`
	Layers []Layer `json:"layers"`
}

type Layer struct {
	Index     int       `json:"ind"`
	Type      int       `json:"ty"`
	Name      string    `json:"nm"`
	RefID     string    `json:"refId"`
	Transform Transform `json:"ks"`
}

// Transform is a layer's `ks` object. Channels keep their JSON order.
type Transform struct {
	Channels []Channel
}

// Channel is one transform property such as `p` or `o`.
type Channel struct {
	Key       string
	Keyframes json.RawMessage
}

// Channel returns the channel with key, if present.
func (t Transform) Channel(key string) (Channel, bool) {
	for _, c := range t.Channels {
		if c.Key == key {
			return c, true
		}
	}
	return Channel{}, false
}

func (t *Transform) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return converr.Structure(FormatName, "ks", "expected object")
	}

	t.Channels = nil
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || raw[0] != '{' {
			continue
		}

		var prop struct {
			K json.RawMessage `json:"k"`
		}
		if err := json.Unmarshal(raw, &prop); err != nil {
			return err
		}
		t.Channels = append(t.Channels, Channel{Key: key, Keyframes: prop.K})
	}
	return nil
}

// entry is one element of a channel's `k` array: a keyframe object or a bare number.
type entry struct {
	frame  *keyframe
	number *float64
}

type keyframe struct {
	Time  *float64 `json:"t"`
	Start numbers  `json:"s"`
	End   numbers  `json:"e"`
}

// numbers accepts either a JSON number or an array of numbers.
type numbers []float64

func (n *numbers) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []float64
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*n = list
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = numbers{f}
	return nil
}

// entries decodes a channel's `k` value. It reports false when `k` is not a non-empty
// array, which marks a static channel.
func (c Channel) entries(path string) ([]entry, bool, error) {
	raw := bytes.TrimSpace(c.Keyframes)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, converr.Structure(FormatName, path, "malformed keyframes: %v", err)
	}
	if len(items) == 0 {
		return nil, false, nil
	}

	out := make([]entry, len(items))
	for i, item := range items {
		item = bytes.TrimSpace(item)
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		switch {
		case len(item) > 0 && item[0] == '{':
			var kf keyframe
			if err := json.Unmarshal(item, &kf); err != nil {
				return nil, false, converr.Structure(FormatName, itemPath, "malformed keyframe: %v", err)
			}
			out[i].frame = &kf
		default:
			var f float64
			if err := json.Unmarshal(item, &f); err != nil {
				return nil, false, converr.Structure(FormatName, itemPath, "expected keyframe or number")
			}
			out[i].number = &f
		}
	}
	return out, true, nil
}

// Parse decodes a Lottie document.
func Parse(source []byte) (*Document, error) {
	var doc Document
	if err := converr.Decode(FormatName, source, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
