package config

import "github.com/dshills/release-it/internal/tree"

// layer is one merge input.
type layer struct {
	source Source
	values tree.Tree
}

// mergeLayers deep-merges layers, given lowest precedence first, into a
// fresh tree. Inputs are never modified.
func mergeLayers(layers []layer) tree.Tree {
	out := tree.New()
	for _, l := range layers {
		tree.Merge(out, l.values)
	}
	return out
}

// originOf returns the highest-precedence layer holding path.
func originOf(layers []layer, path string) (Source, bool) {
	for i := len(layers) - 1; i >= 0; i-- {
		if layers[i].values.Has(path) {
			return layers[i].source, true
		}
	}
	return "", false
}
