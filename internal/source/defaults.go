package source

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/dshills/release-it/internal/tree"
)

// defaultConfig is the built-in default configuration, the lowest layer of
// every merge.
//
//go:embed defaults.json
var defaultConfig []byte

var parseDefaults = sync.OnceValues(func() (tree.Tree, error) {
	return Decode("defaults.json", defaultConfig)
})

// Defaults returns a fresh copy of the built-in default configuration.
func Defaults() tree.Tree {
	t, err := parseDefaults()
	if err != nil {
		panic(fmt.Sprintf("failed to parse embedded defaults: %v", err))
	}
	return t.Clone()
}
