// Package clip describes the runtime property-clip format consumed by the playback engine.
package clip

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Clip is one point of a property timeline. EaseFunction and Delay describe how the
// segment that starts at this clip eases in.
type Clip struct {
	StartTime    float64  `json:"startTime"`
	Value        *float64 `json:"value,omitempty"`
	EaseFunction string   `json:"easeFunction,omitempty"`
	Delay        *float64 `json:"delay,omitempty"`
}

// PropertyConfig is the resolved timeline of one (possibly component) property.
type PropertyConfig struct {
	Property string `json:"property"`
	Clips    []Clip `json:"clips"`
}

// Animates reports whether any two adjacent clips carry different values.
func (p PropertyConfig) Animates() bool {
	for i := 0; i+1 < len(p.Clips); i++ {
		if !sameValue(p.Clips[i].Value, p.Clips[i+1].Value) {
			return true
		}
	}
	return false
}

func sameValue(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// AnimationConfig maps animation names to their property timelines and keeps the
// order in which names were first set.
type AnimationConfig struct {
	names   []string
	entries map[string][]PropertyConfig
}

func NewAnimationConfig() *AnimationConfig {
	return &AnimationConfig{entries: make(map[string][]PropertyConfig)}
}

// Set stores configs under name. Setting an existing name replaces its list but keeps
// its position.
func (a *AnimationConfig) Set(name string, configs []PropertyConfig) {
	if configs == nil {
		configs = []PropertyConfig{}
	}
	if _, ok := a.entries[name]; !ok {
		a.names = append(a.names, name)
	}
	a.entries[name] = configs
}

func (a *AnimationConfig) Get(name string) ([]PropertyConfig, bool) {
	configs, ok := a.entries[name]
	return configs, ok
}

func (a *AnimationConfig) Names() []string {
	names := make([]string, len(a.names))
	copy(names, a.names)
	return names
}

func (a *AnimationConfig) Len() int {
	return len(a.names)
}

func (a *AnimationConfig) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, name := range a.names {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(a.entries[name])
		if err != nil {
			return nil, fmt.Errorf("animation %s: %w", name, err)
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(value)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func (a *AnimationConfig) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("animation config: expected object, got %v", tok)
	}

	a.names = nil
	a.entries = make(map[string][]PropertyConfig)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name := tok.(string)
		var configs []PropertyConfig
		if err := dec.Decode(&configs); err != nil {
			return fmt.Errorf("animation %s: %w", name, err)
		}
		a.Set(name, configs)
	}
	_, err = dec.Token()
	return err
}
