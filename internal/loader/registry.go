package loader

import (
	"github.com/ivlev/alive2json/internal/alive"
	"github.com/ivlev/alive2json/internal/clip"
	"github.com/ivlev/alive2json/internal/lottie"
)

// Converter turns a source document into runtime clips.
type Converter interface {
	Convert(source []byte) (*clip.AnimationConfig, error)
}

type aliveConverter struct{}

func (aliveConverter) Convert(source []byte) (*clip.AnimationConfig, error) {
	return alive.Convert(source)
}

type lottieConverter struct {
	opts lottie.Options
}

func (c lottieConverter) Convert(source []byte) (*clip.AnimationConfig, error) {
	return lottie.Convert(source, c.opts)
}

// NewConverter creates a converter based on opts.Format.
func NewConverter(opts Options) Converter {
	switch opts.Format {
	case Lottie:
		return lottieConverter{opts: lottie.Options{
			SkipUnresolvedLayers: opts.SkipUnresolvedLayers,
			OnUnsupported:        opts.OnUnsupported,
		}}
	default:
		return aliveConverter{}
	}
}

// Native returns the intermediate native document for source. Alive input is
// parsed as is; Lottie input goes through the adapter.
func Native(source []byte, opts Options) (*alive.Document, error) {
	if opts.Format != Lottie {
		return alive.Parse(source)
	}
	doc, err := lottie.Parse(source)
	if err != nil {
		return nil, err
	}
	return lottie.ToNative(doc, lottie.Options{
		SkipUnresolvedLayers: opts.SkipUnresolvedLayers,
		OnUnsupported:        opts.OnUnsupported,
	})
}
