package alive

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/ivlev/alive2json/internal/converr"
)

// FormatName tags errors raised while reading native documents.
const FormatName = "alive"

// Document is the native movie-clip authoring document.
type Document struct {
	MovieClips []MovieClip `json:"movieClips"`
}

// MovieClip is one animated element.
type MovieClip struct {
	Name      string     `json:"name,omitempty"`
	Remark    string     `json:"remark,omitempty"`
	Style     Style      `json:"style,omitempty"`
	Animation *Animation `json:"animation"`
}

type Animation struct {
	EffectsGroup []EffectGroup `json:"effectsGroup"`
}

// EffectGroup is the timeline of one animated property.
type EffectGroup struct {
	Name    string   `json:"name,omitempty"`
	Type    string   `json:"type"`
	Effects []Effect `json:"effects"`
}

// Effect is one transition between two keyframes.
type Effect struct {
	Name     string   `json:"name,omitempty"`
	Type     string   `json:"type,omitempty"`
	Val      *Value   `json:"val"`
	Duration float64  `json:"duration"`
	Delay    *float64 `json:"delay,omitempty"`
	Easing   string   `json:"easing,omitempty"`
}

// Style holds the numeric initial state of a clip keyed by style name.
// Non-numeric entries are dropped while decoding.
type Style map[string]float64

func (s *Style) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return converr.Structure(FormatName, "style", "expected object")
	}
	style := make(Style, len(raw))
	for key, v := range raw {
		if f, ok := v.(float64); ok {
			style[key] = f
		}
	}
	*s = style
	return nil
}

// Lookup returns the style value for key, if it is set.
func (s Style) Lookup(key string) *float64 {
	v, ok := s[key]
	if !ok {
		return nil
	}
	return &v
}

// Value is an effect target: either a scalar or a set of named components.
type Value struct {
	scalar     *float64
	components map[string]float64
}

func Scalar(v float64) *Value {
	return &Value{scalar: &v}
}

func Components(c map[string]float64) *Value {
	return &Value{components: c}
}

// Scalar returns the scalar value and whether the value is scalar.
func (v *Value) Scalar() (float64, bool) {
	if v == nil || v.scalar == nil {
		return 0, false
	}
	return *v.scalar, true
}

// Component returns the named component of a composite value.
func (v *Value) Component(name string) (float64, bool) {
	if v == nil || v.components == nil {
		return 0, false
	}
	c, ok := v.components[name]
	return c, ok
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var raw map[string]interface{}
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		v.components = make(map[string]float64, len(raw))
		for key, c := range raw {
			if f, ok := c.(float64); ok {
				v.components[key] = f
			}
		}
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return converr.Structure(FormatName, "val", "expected number or object, got %s", data)
	}
	v.scalar = &f
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.scalar != nil {
		return json.Marshal(*v.scalar)
	}

	keys := make([]string, 0, len(v.components))
	for key := range v.components {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b bytes.Buffer
	b.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(',')
		}
		k, _ := json.Marshal(key)
		c, err := json.Marshal(v.components[key])
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(c)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

// Parse decodes a native document.
func Parse(source []byte) (*Document, error) {
	var doc Document
	if err := converr.Decode(FormatName, source, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Marshal encodes a native document.
func (d *Document) Marshal() ([]byte, error) {
	return json.Marshal(d)
}
