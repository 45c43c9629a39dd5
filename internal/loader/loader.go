// Package loader dispatches a source document to the converter for its format and
// renders the result as a JavaScript module.
package loader

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/apex/log"
	"github.com/ivlev/alive2json/internal/clip"
	"github.com/ivlev/alive2json/internal/system"
)

// ModulePrefix opens every generated module.
const ModulePrefix = "module.exports="

// Format selects the input pipeline.
type Format int

const (
	Alive Format = iota
	Lottie
)

func (f Format) String() string {
	switch f {
	case Lottie:
		return "lottie"
	default:
		return "alive"
	}
}

// ParseFormat maps a format tag to a Format. Unknown tags fall back to Alive and
// report ok=false so callers can warn.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "alive":
		return Alive, true
	case "lottie":
		return Lottie, true
	default:
		return Alive, false
	}
}

// MustParseFormat is ParseFormat with the fallback logged.
func MustParseFormat(s string) Format {
	f, ok := ParseFormat(s)
	if !ok {
		log.WithField("format", s).Warn("unknown format, using alive")
	}
	return f
}

// Options configure a single conversion.
type Options struct {
	Format Format
	// SkipUnresolvedLayers and OnUnsupported only apply to Lottie input.
	SkipUnresolvedLayers bool
	OnUnsupported        func(error)
}

// Convert runs source through the converter selected by opts.Format.
func Convert(source []byte, opts Options) (*clip.AnimationConfig, error) {
	return NewConverter(opts).Convert(source)
}

// GenerateModule converts source and returns `module.exports=<json>`.
func GenerateModule(source []byte, opts Options) (string, error) {
	cfg, err := Convert(source, opts)
	if err != nil {
		return "", err
	}
	return RenderModule(cfg)
}

// RenderModule serializes an already converted configuration as module text.
func RenderModule(cfg *clip.AnimationConfig) (string, error) {
	buf := system.GetBuffer()
	defer system.PutBuffer(buf)

	buf.WriteString(ModulePrefix)
	if err := writeJSON(buf, cfg); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderJSON serializes cfg without the module prefix.
func RenderJSON(cfg *clip.AnimationConfig) ([]byte, error) {
	buf := system.GetBuffer()
	defer system.PutBuffer(buf)

	if err := writeJSON(buf, cfg); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.Bytes()...), nil
}

func writeJSON(buf *bytes.Buffer, cfg *clip.AnimationConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}
