// Package lottie reshapes Lottie/Bodymovin documents into the native movie-clip schema.
package lottie

import (
	"fmt"

	"github.com/apex/log"
	"github.com/ivlev/alive2json/internal/alive"
	"github.com/ivlev/alive2json/internal/clip"
	"github.com/ivlev/alive2json/internal/converr"
)

// keyframeEasing is the only curve the adapter emits; Lottie bezier handles are ignored.
const keyframeEasing = "easeInOutCubic"

// Options tune how a Lottie document is adapted.
type Options struct {
	// SkipUnresolvedLayers drops layers whose refId matches no asset instead of failing.
	SkipUnresolvedLayers bool
	// OnUnsupported receives an UnsupportedChannelError for every animated channel the
	// adapter ignores. Defaults to a debug log entry.
	OnUnsupported func(error)
}

type channelKind int

const (
	channelPosition channelKind = iota + 1
	channelScale
	channelOpacity
)

type channelGroup struct {
	name string
	typ  string
}

var channelKinds = map[string]channelKind{
	"p": channelPosition,
	"s": channelScale,
	"o": channelOpacity,
}

var channelGroups = map[channelKind]channelGroup{
	channelPosition: {name: "Move", typ: "move"},
	channelScale:    {name: "Scale", typ: "scale"},
	channelOpacity:  {name: "Opacity", typ: "opacity"},
}

// Convert parses a Lottie document and converts it to runtime clips through the
// native converter.
func Convert(source []byte, opts Options) (*clip.AnimationConfig, error) {
	doc, err := Parse(source)
	if err != nil {
		return nil, err
	}
	native, err := ToNative(doc, opts)
	if err != nil {
		return nil, err
	}
	return alive.ConvertDocument(native)
}

// ToNative builds the native movie-clip document for doc. Every layer that animates
// position, scale or opacity becomes one movie clip named after its asset reference.
func ToNative(doc *Document, opts Options) (*alive.Document, error) {
	if doc.Assets == nil {
		return nil, converr.Structure(FormatName, "assets", "missing")
	}
	if doc.FrameRate == nil {
		return nil, converr.Structure(FormatName, "fr", "missing")
	}
	if *doc.FrameRate <= 0 {
		return nil, converr.Structure(FormatName, "fr", "frame rate must be positive, got %v", *doc.FrameRate)
	}
	frameTime := 1000 / *doc.FrameRate

	out := &alive.Document{MovieClips: []alive.MovieClip{}}
	for i, layer := range collectLayers(doc) {
		path := fmt.Sprintf("layers[%d]", i)

		asset, ok := findAsset(doc.Assets, layer.RefID)
		if !ok {
			if opts.SkipUnresolvedLayers {
				log.WithFields(log.Fields{"layer": layer.Name, "refId": layer.RefID}).Warn("skipping layer with unresolved asset")
				continue
			}
			return nil, converr.Structure(FormatName, path+".refId", "no asset with id %q", layer.RefID)
		}

		mc, err := convertLayer(layer, asset, frameTime, path, opts)
		if err != nil {
			return nil, err
		}
		if mc != nil {
			out.MovieClips = append(out.MovieClips, *mc)
		}
	}

	return out, nil
}

// collectLayers prefers layers nested in assets and falls back to the top-level list.
func collectLayers(doc *Document) []Layer {
	var layers []Layer
	for _, asset := range doc.Assets {
		layers = append(layers, asset.Layers...)
	}
	if len(layers) == 0 {
		layers = doc.Layers
	}
	return layers
}

func findAsset(assets []Asset, id string) (Asset, bool) {
	for _, asset := range assets {
		if asset.ID == id {
			return asset, true
		}
	}
	return Asset{}, false
}

func convertLayer(layer Layer, asset Asset, frameTime float64, path string, opts Options) (*alive.MovieClip, error) {
	style := alive.Style{
		"width":   asset.Width,
		"height":  asset.Height,
		"left":    0,
		"top":     0,
		"opacity": 1,
		"rotate":  0,
		"scaleX":  1,
		"scaleY":  1,
	}

	var groups []alive.EffectGroup
	for _, ch := range layer.Transform.Channels {
		chPath := fmt.Sprintf("%s.ks.%s.k", path, ch.Key)

		kind, supported := channelKinds[ch.Key]
		if !supported {
			if isAnimated(ch) {
				reportUnsupported(opts, &converr.UnsupportedChannelError{Layer: layer.Name, Channel: ch.Key})
			}
			continue
		}

		entries, ok, err := ch.entries(chPath)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		var value func(vals []float64, path string) (*alive.Value, error)
		switch kind {
		case channelPosition:
			anchorX, anchorY, err := anchor(layer.Transform, path)
			if err != nil {
				return nil, err
			}
			if err := seedPair(style, "left", "top", entries, chPath, func(x, y float64) (float64, float64) {
				return x - anchorX, y - anchorY
			}); err != nil {
				return nil, err
			}
			value = func(vals []float64, path string) (*alive.Value, error) {
				if len(vals) < 2 {
					return nil, converr.Structure(FormatName, path, "position needs two components")
				}
				return alive.Components(map[string]float64{"x": vals[0] - anchorX, "y": vals[1] - anchorY}), nil
			}
		case channelScale:
			if err := seedPair(style, "scaleX", "scaleY", entries, chPath, func(x, y float64) (float64, float64) {
				return x / 100, y / 100
			}); err != nil {
				return nil, err
			}
			value = func(vals []float64, path string) (*alive.Value, error) {
				if len(vals) < 2 {
					return nil, converr.Structure(FormatName, path, "scale needs two components")
				}
				return alive.Components(map[string]float64{"scaleX": vals[0] / 100, "scaleY": vals[1] / 100}), nil
			}
		case channelOpacity:
			if err := seedScalar(style, "opacity", entries, chPath); err != nil {
				return nil, err
			}
			value = func(vals []float64, path string) (*alive.Value, error) {
				return alive.Scalar(vals[0] / 100), nil
			}
		}

		group := channelGroups[kind]
		effects, err := walk(entries, frameTime, group, chPath, value)
		if err != nil {
			return nil, err
		}
		if len(effects) > 0 {
			groups = append(groups, alive.EffectGroup{Name: group.name, Type: group.typ, Effects: effects})
		}
	}

	if len(groups) == 0 {
		return nil, nil
	}

	return &alive.MovieClip{
		Name:      layer.RefID,
		Remark:    layer.Name,
		Style:     style,
		Animation: &alive.Animation{EffectsGroup: groups},
	}, nil
}

// walk emits one effect per adjacent keyframe pair. The first effect's delay is the
// absolute time of the first keyframe.
func walk(entries []entry, frameTime float64, group channelGroup, path string,
	value func(vals []float64, path string) (*alive.Value, error)) ([]alive.Effect, error) {

	var effects []alive.Effect
	for idx := 1; idx < len(entries); idx++ {
		before, current := entries[idx-1], entries[idx]
		if before.frame == nil && current.frame == nil {
			continue
		}

		itemPath := fmt.Sprintf("%s[%d]", path, idx)
		if before.frame == nil || current.frame == nil {
			return nil, converr.Structure(FormatName, itemPath, "keyframe next to a static value")
		}
		if before.frame.Time == nil || current.frame.Time == nil {
			return nil, converr.Structure(FormatName, itemPath, "keyframe without time")
		}

		vals := []float64(current.frame.Start)
		if len(vals) == 0 {
			vals = before.frame.End
		}
		if len(vals) == 0 {
			return nil, converr.Structure(FormatName, itemPath, "keyframe without value")
		}

		v, err := value(vals, itemPath)
		if err != nil {
			return nil, err
		}

		effects = append(effects, alive.Effect{
			Name:     fmt.Sprintf("%s_%d", group.name, idx-1),
			Type:     group.typ,
			Val:      v,
			Duration: (*current.frame.Time - *before.frame.Time) * frameTime,
			Delay:    clip.Float(0),
			Easing:   keyframeEasing,
		})
	}

	if len(effects) > 0 {
		effects[0].Delay = clip.Float(*entries[0].frame.Time * frameTime)
	}
	return effects, nil
}

// anchor reads the layer's anchor point from the first entry of `a`.
func anchor(t Transform, path string) (float64, float64, error) {
	ch, ok := t.Channel("a")
	if !ok {
		return 0, 0, nil
	}
	entries, ok, err := ch.entries(path + ".ks.a.k")
	if err != nil || !ok {
		return 0, 0, err
	}

	first := entries[0]
	switch {
	case first.frame != nil:
		if len(first.frame.Start) < 2 {
			return 0, 0, converr.Structure(FormatName, path+".ks.a.k[0].s", "anchor needs two components")
		}
		return first.frame.Start[0], first.frame.Start[1], nil
	case len(entries) >= 2 && entries[1].number != nil:
		return *first.number, *entries[1].number, nil
	default:
		return 0, 0, converr.Structure(FormatName, path+".ks.a.k", "anchor needs two components")
	}
}

// firstPair reads the channel's initial two-component value.
func firstPair(entries []entry, path string) (float64, float64, error) {
	first := entries[0]
	if first.frame != nil {
		if len(first.frame.Start) < 2 {
			return 0, 0, converr.Structure(FormatName, path+"[0].s", "expected two components")
		}
		return first.frame.Start[0], first.frame.Start[1], nil
	}
	if len(entries) < 2 || entries[1].number == nil {
		return 0, 0, converr.Structure(FormatName, path, "expected two components")
	}
	return *first.number, *entries[1].number, nil
}

func seedPair(style alive.Style, xKey, yKey string, entries []entry, path string, f func(x, y float64) (float64, float64)) error {
	x, y, err := firstPair(entries, path)
	if err != nil {
		return err
	}
	style[xKey], style[yKey] = f(x, y)
	return nil
}

func seedScalar(style alive.Style, key string, entries []entry, path string) error {
	first := entries[0]
	switch {
	case first.frame != nil && len(first.frame.Start) > 0:
		style[key] = first.frame.Start[0] / 100
	case first.number != nil:
		style[key] = *first.number / 100
	default:
		return converr.Structure(FormatName, path+"[0].s", "missing")
	}
	return nil
}

func isAnimated(ch Channel) bool {
	entries, ok, err := ch.entries(ch.Key)
	if err != nil || !ok {
		return false
	}
	for _, e := range entries {
		if e.frame != nil {
			return true
		}
	}
	return false
}

func reportUnsupported(opts Options, err *converr.UnsupportedChannelError) {
	if opts.OnUnsupported != nil {
		opts.OnUnsupported(err)
		return
	}
	log.WithFields(log.Fields{"layer": err.Layer, "channel": err.Channel}).Debug("unsupported channel skipped")
}
