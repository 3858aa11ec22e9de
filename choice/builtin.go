package choice

import "sort"

// Builtin tables ship with the binary so a bare install can roll something.
var builtinSets = map[string]Set{
	"directions": {
		Title: "Directions",
		Weights: map[string]float64{
			"Forward": 0.3,
			"Back":    0.1,
			"Left":    0.15,
			"Right":   0.15,
			"Up":      0.15,
			"Down":    0.15,
		},
	},
}

// Builtin looks up a table shipped with the binary.
func Builtin(name string) (Set, bool) {
	set, ok := builtinSets[name]
	return set, ok
}

// BuiltinNames lists the shipped tables, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinSets))
	for name := range builtinSets {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
