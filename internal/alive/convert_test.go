package alive

import (
	"encoding/json"
	"testing"

	"github.com/ivlev/alive2json/internal/clip"
	"github.com/ivlev/alive2json/internal/converr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const opacityDoc = `{
  "movieClips": [{
    "style": {"opacity": 1},
    "animation": {"effectsGroup": [{
      "type": "opacity",
      "effects": [
        {"type": "opacity", "val": 0.5, "duration": 200, "delay": 0, "easing": "easeInQuad"},
        {"type": "opacity", "val": 1, "duration": 300, "delay": 50, "easing": "easeOutBounce"}
      ]
    }]}
  }]
}`

func TestConvertOpacity(t *testing.T) {
	cfg, err := Convert([]byte(opacityDoc))
	require.NoError(t, err)

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"easyAnimation0":[{"property":"alpha","clips":[
		{"startTime":0,"value":1,"easeFunction":"Quadratic.In","delay":0},
		{"startTime":200,"value":0.5,"easeFunction":"Bounce.Out","delay":50},
		{"startTime":500,"value":1}
	]}]}`, string(data))
}

func TestConvertCompositeProperties(t *testing.T) {
	src := `{"movieClips": [{
	  "name": "hero",
	  "style": {"left": 10, "top": 20, "scaleX": 1, "scaleY": 1},
	  "animation": {"effectsGroup": [
	    {"type": "move", "effects": [
	      {"val": {"x": 100, "y": 20}, "duration": 400, "easing": "linear"},
	      {"val": {"x": 100, "y": 80}, "duration": 100, "easing": "easeOutBack"}
	    ]},
	    {"type": "scale", "effects": [
	      {"val": {"scaleX": 2, "scaleY": 3}, "duration": 250, "easing": "easeInOutCubic"}
	    ]}
	  ]}
	}]}`

	cfg, err := Convert([]byte(src))
	require.NoError(t, err)

	configs, ok := cfg.Get("hero")
	require.True(t, ok)
	require.Len(t, configs, 4)

	props := make([]string, len(configs))
	for i, pc := range configs {
		props[i] = pc.Property
	}
	assert.Equal(t, []string{"position.x", "position.y", "scale.x", "scale.y"}, props)

	x := configs[0]
	require.Len(t, x.Clips, 3)
	assert.Equal(t, 10.0, *x.Clips[0].Value)
	assert.Equal(t, "Linear.None", x.Clips[0].EaseFunction)
	assert.Equal(t, 400.0, x.Clips[1].StartTime)
	assert.Equal(t, 100.0, *x.Clips[1].Value)
	assert.Equal(t, "Back.Out", x.Clips[1].EaseFunction)
	assert.Equal(t, 500.0, x.Clips[2].StartTime)

	scaleY := configs[3]
	assert.Equal(t, 1.0, *scaleY.Clips[0].Value)
	assert.Equal(t, 3.0, *scaleY.Clips[1].Value)
	assert.Equal(t, 250.0, scaleY.Clips[1].StartTime)
}

func TestConvertStartTimesAccumulate(t *testing.T) {
	durations := []float64{120, 0, 45.5, 300}
	effects := make([]Effect, len(durations))
	for i, d := range durations {
		effects[i] = Effect{Val: Scalar(float64(i + 2)), Duration: d}
	}
	doc := &Document{MovieClips: []MovieClip{{
		Style:     Style{"rotate": 0},
		Animation: &Animation{EffectsGroup: []EffectGroup{{Type: "rotate", Effects: effects}}},
	}}}

	cfg, err := ConvertDocument(doc)
	require.NoError(t, err)
	configs, _ := cfg.Get("easyAnimation0")
	require.Len(t, configs, 1)
	assert.Equal(t, "rotation", configs[0].Property)

	clips := configs[0].Clips
	require.Len(t, clips, len(durations)+1)
	assert.Equal(t, 0.0, clips[0].StartTime)
	sum := 0.0
	for i, d := range durations {
		sum += d
		assert.Equal(t, sum, clips[i+1].StartTime)
		assert.GreaterOrEqual(t, clips[i+1].StartTime, clips[i].StartTime)
	}
}

func TestConvertElidesStaticProperties(t *testing.T) {
	src := `{"movieClips": [{
	  "name": "still",
	  "style": {"left": 0, "top": 5, "opacity": 1},
	  "animation": {"effectsGroup": [
	    {"type": "opacity", "effects": [{"val": 1, "duration": 100}, {"val": 1, "duration": 100}]},
	    {"type": "move", "effects": [{"val": {"x": 0, "y": 50}, "duration": 100}]}
	  ]}
	}]}`

	cfg, err := Convert([]byte(src))
	require.NoError(t, err)

	configs, ok := cfg.Get("still")
	require.True(t, ok)
	require.Len(t, configs, 1)
	assert.Equal(t, "position.y", configs[0].Property)
}

func TestConvertKeepsKeyWhenEverythingElided(t *testing.T) {
	src := `{"movieClips": [{"name": "idle", "style": {"opacity": 1},
	  "animation": {"effectsGroup": [{"type": "opacity", "effects": [{"val": 1, "duration": 10}]}]}}]}`

	cfg, err := Convert([]byte(src))
	require.NoError(t, err)
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.Equal(t, `{"idle":[]}`, string(data))
}

func TestConvertSkipsClipsWithoutEffects(t *testing.T) {
	src := `{"movieClips": [
	  {"name": "empty", "animation": {"effectsGroup": []}},
	  {"animation": {}},
	  {"style": {"opacity": 0}, "animation": {"effectsGroup": [{"type": "opacity", "effects": [{"val": 1, "duration": 10}]}]}}
	]}`

	cfg, err := Convert([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"easyAnimation2"}, cfg.Names())
}

func TestConvertUnknownEasingIsOmitted(t *testing.T) {
	src := `{"movieClips": [{"style": {"opacity": 0},
	  "animation": {"effectsGroup": [{"type": "opacity", "effects": [
	    {"val": 1, "duration": 10, "easing": "spring"},
	    {"val": 0, "duration": 10, "easing": "wobble"}
	  ]}]}}]}`

	cfg, err := Convert([]byte(src))
	require.NoError(t, err)
	configs, _ := cfg.Get("easyAnimation0")
	require.Len(t, configs, 1)
	for _, c := range configs[0].Clips {
		assert.Empty(t, c.EaseFunction)
	}
}

func TestConvertPassThroughProperty(t *testing.T) {
	src := `{"movieClips": [{"style": {"width": 10},
	  "animation": {"effectsGroup": [{"type": "width", "effects": [{"val": 40, "duration": 10}]}]}}]}`

	cfg, err := Convert([]byte(src))
	require.NoError(t, err)
	configs, _ := cfg.Get("easyAnimation0")
	require.Len(t, configs, 1)
	assert.Equal(t, "width", configs[0].Property)
	assert.Equal(t, 10.0, *configs[0].Clips[0].Value)
}

func TestConvertMissingInitialValue(t *testing.T) {
	src := `{"movieClips": [{"animation": {"effectsGroup": [{"type": "opacity", "effects": [{"val": 1, "duration": 10}]}]}}]}`

	cfg, err := Convert([]byte(src))
	require.NoError(t, err)
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"easyAnimation0":[{"property":"alpha","clips":[{"startTime":0},{"startTime":10,"value":1}]}]}`, string(data))
}

func TestConvertDuplicateNamesReplaceInPlace(t *testing.T) {
	src := `{"movieClips": [
	  {"name": "a", "style": {"opacity": 0}, "animation": {"effectsGroup": [{"type": "opacity", "effects": [{"val": 1, "duration": 10}]}]}},
	  {"name": "b", "style": {"opacity": 0}, "animation": {"effectsGroup": [{"type": "opacity", "effects": [{"val": 1, "duration": 10}]}]}},
	  {"name": "a", "style": {"rotate": 0}, "animation": {"effectsGroup": [{"type": "rotate", "effects": [{"val": 90, "duration": 10}]}]}}
	]}`

	cfg, err := Convert([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, cfg.Names())
	configs, _ := cfg.Get("a")
	require.Len(t, configs, 1)
	assert.Equal(t, "rotation", configs[0].Property)
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		parse     bool
		structure bool
	}{
		{"malformed", `{"movieClips": [`, true, false},
		{"missing movieClips", `{}`, false, true},
		{"null movieClips", `{"movieClips": null}`, false, true},
		{"movieClips not array", `{"movieClips": 3}`, false, true},
		{"missing animation", `{"movieClips": [{"name": "x"}]}`, false, true},
		{"missing type", `{"movieClips": [{"animation": {"effectsGroup": [{"effects": []}]}}]}`, false, true},
		{"missing effects", `{"movieClips": [{"animation": {"effectsGroup": [{"type": "opacity"}]}}]}`, false, true},
		{"missing val", `{"movieClips": [{"animation": {"effectsGroup": [{"type": "opacity", "effects": [{"duration": 1}]}]}}]}`, false, true},
		{"string val", `{"movieClips": [{"animation": {"effectsGroup": [{"type": "opacity", "effects": [{"val": "x"}]}]}}]}`, false, true},
		{"composite val on scalar", `{"movieClips": [{"animation": {"effectsGroup": [{"type": "opacity", "effects": [{"val": {"x": 1}}]}]}}]}`, false, true},
		{"missing component", `{"movieClips": [{"animation": {"effectsGroup": [{"type": "move", "effects": [{"val": {"x": 1}}]}]}}]}`, false, true},
		{"duration not number", `{"movieClips": [{"animation": {"effectsGroup": [{"type": "opacity", "effects": [{"val": 1, "duration": "1s"}]}]}}]}`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Convert([]byte(tt.src))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Equal(t, tt.parse, converr.IsParse(err), "parse error: %v", err)
			assert.Equal(t, tt.structure, converr.IsStructure(err), "structure error: %v", err)
		})
	}
}

func TestComponentValueFallsBackToStyleKey(t *testing.T) {
	v := Components(map[string]float64{"scaleX": 0.5, "y": 0})

	x, ok := v.Component("x")
	assert.False(t, ok)
	assert.Equal(t, 0.0, x)

	clips, err := resolveClips([]Effect{{Val: v, Duration: 10}}, clip.Float(1), func(v *Value) (float64, bool) {
		if f, ok := v.Component("x"); ok {
			return f, true
		}
		return v.Component("scaleX")
	}, "g", "component x")
	require.NoError(t, err)
	assert.Equal(t, 0.5, *clips[1].Value)
}
