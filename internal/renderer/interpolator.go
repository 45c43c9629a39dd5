// Package renderer evaluates converted property clips at a point in time.
package renderer

import (
	"github.com/fogleman/ease"
	"github.com/ivlev/alive2json/internal/clip"
)

// Curve maps linear progress in [0,1] to eased progress.
type Curve func(t float64) float64

// curves is keyed by the runtime identifiers the converter emits.
var curves = map[string]Curve{
	"Linear.None":   ease.Linear,
	"Quadratic.In":  ease.InQuad,
	"Quadratic.Out": ease.OutQuad,
	"Cubic.InOut":   ease.InOutCubic,
	"Back.Out":      ease.OutBack,
	"Elastic.Out":   ease.OutElastic,
	"Bounce.Out":    ease.OutBounce,
}

// CurveFor returns the curve for a runtime identifier, linear when unmapped.
func CurveFor(name string) Curve {
	if c, ok := curves[name]; ok {
		return c
	}
	return ease.Linear
}

// Sample evaluates cfg at time t in milliseconds. Segment i runs from clips[i] to
// clips[i+1] and is shifted by the delays of clips 0..i. The value holds before the
// first segment and after the last one. ok is false when the clip needed has no value.
func Sample(cfg clip.PropertyConfig, t float64) (float64, bool) {
	clips := cfg.Clips
	if len(clips) == 0 {
		return 0, false
	}

	offset := 0.0
	for i := 0; i < len(clips)-1; i++ {
		from, to := clips[i], clips[i+1]
		if from.Delay != nil {
			offset += *from.Delay
		}

		start := from.StartTime + offset
		end := to.StartTime + offset
		if t < start {
			return value(from)
		}
		if t >= end {
			continue
		}

		if from.Value == nil || to.Value == nil {
			return 0, false
		}
		timeDelta := end - start
		if timeDelta <= 0 {
			return *to.Value, true
		}
		p := CurveFor(from.EaseFunction)((t - start) / timeDelta)
		return lerp(*from.Value, *to.Value, p), true
	}

	return value(clips[len(clips)-1])
}

// Frame is the sampled value of every property of one animation.
type Frame map[string]float64

// SampleAll evaluates every property in configs at t. Properties without a value at
// t are left out.
func SampleAll(configs []clip.PropertyConfig, t float64) Frame {
	frame := make(Frame, len(configs))
	for _, cfg := range configs {
		if v, ok := Sample(cfg, t); ok {
			frame[cfg.Property] = v
		}
	}
	return frame
}

// Duration is the time at which the last segment of cfg ends, delays included.
func Duration(cfg clip.PropertyConfig) float64 {
	if len(cfg.Clips) == 0 {
		return 0
	}
	offset := 0.0
	for _, c := range cfg.Clips[:len(cfg.Clips)-1] {
		if c.Delay != nil {
			offset += *c.Delay
		}
	}
	return cfg.Clips[len(cfg.Clips)-1].StartTime + offset
}

func value(c clip.Clip) (float64, bool) {
	if c.Value == nil {
		return 0, false
	}
	return *c.Value, true
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
