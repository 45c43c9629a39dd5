package alive

var easeFunctions = map[string]string{
	"linear":         "Linear.None",
	"easeInQuad":     "Quadratic.In",
	"easeOutQuad":    "Quadratic.Out",
	"easeInOutCubic": "Cubic.InOut",
	"easeOutBack":    "Back.Out",
	"easeOutElastic": "Elastic.Out",
	"easeOutBounce":  "Bounce.Out",
}

// EaseFunction maps an authoring easing name to the runtime curve identifier.
// Unknown names map to "".
func EaseFunction(easing string) string {
	return easeFunctions[easing]
}
