// Package alive converts native movie-clip documents into runtime property clips.
package alive

import (
	"fmt"

	"github.com/ivlev/alive2json/internal/clip"
	"github.com/ivlev/alive2json/internal/converr"
)

// Convert parses a native document and resolves it into an AnimationConfig.
func Convert(source []byte) (*clip.AnimationConfig, error) {
	doc, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return ConvertDocument(doc)
}

// ConvertDocument resolves every movie clip of doc. Clips without effect groups produce
// nothing; property timelines that never change value are dropped.
func ConvertDocument(doc *Document) (*clip.AnimationConfig, error) {
	if doc.MovieClips == nil {
		return nil, converr.Structure(FormatName, "movieClips", "missing")
	}

	out := clip.NewAnimationConfig()
	for i, mc := range doc.MovieClips {
		path := fmt.Sprintf("movieClips[%d]", i)
		if mc.Animation == nil {
			return nil, converr.Structure(FormatName, path+".animation", "missing")
		}
		if len(mc.Animation.EffectsGroup) == 0 {
			continue
		}

		name := mc.Name
		if name == "" {
			name = fmt.Sprintf("easyAnimation%d", i)
		}

		configs := []clip.PropertyConfig{}
		for j, group := range mc.Animation.EffectsGroup {
			resolved, err := resolveGroup(group, mc.Style, fmt.Sprintf("%s.animation.effectsGroup[%d]", path, j))
			if err != nil {
				return nil, err
			}
			for _, pc := range resolved {
				if pc.Animates() {
					configs = append(configs, pc)
				}
			}
		}
		out.Set(name, configs)
	}

	return out, nil
}

func resolveGroup(group EffectGroup, style Style, path string) ([]clip.PropertyConfig, error) {
	if group.Type == "" {
		return nil, converr.Structure(FormatName, path+".type", "missing")
	}
	if group.Effects == nil {
		return nil, converr.Structure(FormatName, path+".effects", "missing")
	}
	for i, e := range group.Effects {
		if e.Val == nil {
			return nil, converr.Structure(FormatName, fmt.Sprintf("%s.effects[%d].val", path, i), "missing")
		}
	}

	property := PropertyName(group.Type)

	if components := ComponentsOf(group.Type); components != nil {
		configs := make([]clip.PropertyConfig, 0, len(components))
		for _, c := range components {
			c := c
			valueOf := func(v *Value) (float64, bool) {
				if f, ok := v.Component(c.Key); ok {
					return f, true
				}
				return v.Component(c.StyleKey)
			}
			clips, err := resolveClips(group.Effects, style.Lookup(c.StyleKey), valueOf, path, "component "+c.Key)
			if err != nil {
				return nil, err
			}
			configs = append(configs, clip.PropertyConfig{Property: property + "." + c.Key, Clips: clips})
		}
		return configs, nil
	}

	initialKey := group.Type
	if len(group.Effects) > 0 && group.Effects[0].Type != "" {
		initialKey = group.Effects[0].Type
	}
	clips, err := resolveClips(group.Effects, style.Lookup(initialKey), (*Value).Scalar, path, "a number")
	if err != nil {
		return nil, err
	}
	return []clip.PropertyConfig{{Property: property, Clips: clips}}, nil
}

// resolveClips folds effects into clips. The first effect also yields the synthetic
// clip at startTime 0 holding the initial value; every clip borrows easing and delay
// from the effect that follows it.
func resolveClips(effects []Effect, initial *float64, valueOf func(*Value) (float64, bool), path, want string) ([]clip.Clip, error) {
	clips := make([]clip.Clip, 0, len(effects)+1)
	var prevStart float64

	for i, e := range effects {
		v, ok := valueOf(e.Val)
		if !ok {
			return nil, converr.Structure(FormatName, fmt.Sprintf("%s.effects[%d].val", path, i), "expected %s", want)
		}

		current := clip.Clip{Value: clip.Float(v)}
		if i == 0 {
			clips = append(clips, clip.Clip{
				StartTime:    0,
				Value:        initial,
				EaseFunction: EaseFunction(e.Easing),
				Delay:        copyFloat(e.Delay),
			})
			current.StartTime = e.Duration
		} else {
			current.StartTime = prevStart + e.Duration
		}

		if i+1 < len(effects) {
			next := effects[i+1]
			current.EaseFunction = EaseFunction(next.Easing)
			current.Delay = copyFloat(next.Delay)
		}

		clips = append(clips, current)
		prevStart = current.StartTime
	}

	return clips, nil
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	return clip.Float(*f)
}
