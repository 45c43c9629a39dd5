package renderer

import (
	"math"
	"testing"

	"github.com/ivlev/alive2json/internal/clip"
	"github.com/stretchr/testify/assert"
)

func opacityConfig() clip.PropertyConfig {
	return clip.PropertyConfig{
		Property: "alpha",
		Clips: []clip.Clip{
			{StartTime: 0, Value: clip.Float(0), EaseFunction: "Linear.None", Delay: clip.Float(100)},
			{StartTime: 200, Value: clip.Float(1), EaseFunction: "Quadratic.In", Delay: clip.Float(50)},
			{StartTime: 400, Value: clip.Float(0.5)},
		},
	}
}

func TestSample(t *testing.T) {
	cfg := opacityConfig()

	tests := []struct {
		time     float64
		expected float64
	}{
		{0, 0},      // Inside the first delay
		{100, 0},    // First segment starts
		{200, 0.5},  // Linear midpoint
		{300, 1},    // First segment ends
		{320, 1},    // Inside the second delay
		{350, 1},    // Second segment starts
		{450, 0.875}, // Quadratic.In at p=0.5 covers a quarter of the way
		{550, 0.5},  // Last value
		{5000, 0.5}, // After the end
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			v, ok := Sample(cfg, tt.time)
			assert.True(t, ok)
			assert.InDelta(t, tt.expected, v, 1e-9, "at %.0fms", tt.time)
		})
	}
}

func TestSampleMissingValues(t *testing.T) {
	cfg := clip.PropertyConfig{Property: "alpha", Clips: []clip.Clip{
		{StartTime: 0},
		{StartTime: 100, Value: clip.Float(1)},
	}}

	_, ok := Sample(cfg, 50)
	assert.False(t, ok)

	v, ok := Sample(cfg, 150)
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)

	_, ok = Sample(clip.PropertyConfig{}, 0)
	assert.False(t, ok)
}

func TestSampleZeroDurationSegment(t *testing.T) {
	cfg := clip.PropertyConfig{Clips: []clip.Clip{
		{StartTime: 0, Value: clip.Float(1)},
		{StartTime: 0, Value: clip.Float(2)},
		{StartTime: 10, Value: clip.Float(3)},
	}}

	v, ok := Sample(cfg, 0)
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)
}

func TestCurveFor(t *testing.T) {
	names := []string{"Linear.None", "Quadratic.In", "Quadratic.Out", "Cubic.InOut", "Back.Out", "Elastic.Out", "Bounce.Out", "", "Spring.Wobble"}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			c := CurveFor(name)
			assert.InDelta(t, 0, c(0), 1e-2)
			assert.InDelta(t, 1, c(1), 1e-2)
		})
	}

	assert.InDelta(t, 0.3, CurveFor("unknown")(0.3), 1e-9)
	assert.Less(t, CurveFor("Quadratic.In")(0.5), 0.5)
	assert.Greater(t, CurveFor("Quadratic.Out")(0.5), 0.5)
}

func TestSampleAllAndDuration(t *testing.T) {
	configs := []clip.PropertyConfig{
		opacityConfig(),
		{Property: "rotation", Clips: []clip.Clip{{StartTime: 0, Value: clip.Float(0)}, {StartTime: 100, Value: clip.Float(90)}}},
	}

	frame := SampleAll(configs, 50)
	assert.Equal(t, 0.0, frame["alpha"])
	assert.InDelta(t, 45, frame["rotation"], 1e-9)

	assert.Equal(t, 550.0, Duration(configs[0]))
	assert.Equal(t, 100.0, Duration(configs[1]))
	assert.False(t, math.IsNaN(Duration(clip.PropertyConfig{})))
}
