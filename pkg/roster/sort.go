package roster

import (
	"maps"
	"slices"
)

func sortedNames[M ~map[string]float64](m M) []string {
	return slices.Sorted(maps.Keys(m))
}
