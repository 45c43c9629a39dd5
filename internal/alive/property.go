package alive

// Kind is the semantic property an effect group animates.
type Kind int

const (
	KindOther Kind = iota
	KindOpacity
	KindMove
	KindRotate
	KindScale
)

// Component is one independently animated part of a composite property.
type Component struct {
	Key      string // suffix of the runtime property, and key inside val
	StyleKey string // style entry holding the initial value, and fallback key inside val
}

type kindInfo struct {
	property   string
	components []Component
}

var kindByType = map[string]Kind{
	"opacity":  KindOpacity,
	"move":     KindMove,
	"position": KindMove,
	"rotate":   KindRotate,
	"scale":    KindScale,
}

var kinds = map[Kind]kindInfo{
	KindOpacity: {property: "alpha"},
	KindMove: {property: "position", components: []Component{
		{Key: "x", StyleKey: "left"},
		{Key: "y", StyleKey: "top"},
	}},
	KindRotate: {property: "rotation"},
	KindScale: {property: "scale", components: []Component{
		{Key: "x", StyleKey: "scaleX"},
		{Key: "y", StyleKey: "scaleY"},
	}},
}

// KindOf classifies an effect group type.
func KindOf(typ string) Kind {
	return kindByType[typ]
}

// PropertyName returns the runtime property name for an effect group type.
// Types without a rename pass through unchanged.
func PropertyName(typ string) string {
	if info, ok := kinds[KindOf(typ)]; ok {
		return info.property
	}
	return typ
}

// ComponentsOf returns the components of a composite type, or nil for scalar types.
func ComponentsOf(typ string) []Component {
	return kinds[KindOf(typ)].components
}
