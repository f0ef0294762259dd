package tree

import (
	"sort"
	"strings"
)

// Separator splits an option path into its segments.
const Separator = "."

// Tree is a nested option mapping. Nested subtrees are stored as
// map[string]any so decoded JSON, YAML and TOML documents can be used as-is.
type Tree map[string]any

// New returns an empty tree.
func New() Tree {
	return Tree{}
}

// FromMap normalizes m into a Tree. Nested maps with non-string keys and
// slices of maps (as produced by some decoders) are converted to the
// canonical map[string]any / []any shapes. m itself is not modified.
func FromMap(m map[string]any) Tree {
	t := make(Tree, len(m))
	for k, v := range m {
		t[k] = normalize(v)
	}
	return t
}

// SplitPath splits a dotted option path. Empty segments are dropped, so
// "a..b" and "a.b" address the same value.
func SplitPath(path string) []string {
	parts := strings.Split(path, Separator)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Get returns the value at path and whether it is present. A present nil
// value reports true.
func (t Tree) Get(path string) (any, bool) {
	segs := SplitPath(path)
	if len(segs) == 0 {
		return nil, false
	}
	var cur map[string]any = t
	for i, seg := range segs {
		v, ok := cur[seg]
		if !ok {
			return nil, false
		}
		if i == len(segs)-1 {
			return v, true
		}
		next, ok := asMap(v)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// Has reports whether path is present.
func (t Tree) Has(path string) bool {
	_, ok := t.Get(path)
	return ok
}

// Bool returns the value at path when it is a bool.
func (t Tree) Bool(path string) (bool, bool) {
	v, ok := t.Get(path)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// String returns the value at path when it is a string.
func (t Tree) String(path string) (string, bool) {
	v, ok := t.Get(path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Sub returns the subtree at path. The returned tree shares storage with t.
func (t Tree) Sub(path string) (Tree, bool) {
	v, ok := t.Get(path)
	if !ok {
		return nil, false
	}
	m, ok := asMap(v)
	if !ok {
		return nil, false
	}
	return Tree(m), true
}

// Set stores v at path, creating intermediate subtrees. A scalar found at an
// intermediate segment is replaced by a subtree.
func (t Tree) Set(path string, v any) {
	segs := SplitPath(path)
	if len(segs) == 0 {
		return
	}
	var cur map[string]any = t
	for _, seg := range segs[:len(segs)-1] {
		next, ok := asMap(cur[seg])
		if !ok {
			next = map[string]any{}
			cur[seg] = next
		}
		cur = next
	}
	cur[segs[len(segs)-1]] = normalize(v)
}

// Delete removes the value at path. Empty parents are left in place.
func (t Tree) Delete(path string) {
	segs := SplitPath(path)
	if len(segs) == 0 {
		return
	}
	var cur map[string]any = t
	for _, seg := range segs[:len(segs)-1] {
		next, ok := asMap(cur[seg])
		if !ok {
			return
		}
		cur = next
	}
	delete(cur, segs[len(segs)-1])
}

// Clone returns a deep copy of t.
func (t Tree) Clone() Tree {
	if t == nil {
		return New()
	}
	return Tree(cloneMap(t))
}

// Flatten returns every leaf keyed by its dotted path. Slices and empty
// subtrees are leaves.
func (t Tree) Flatten() map[string]any {
	out := make(map[string]any)
	flatten(out, "", t)
	return out
}

// Paths returns the sorted dotted paths of every leaf.
func (t Tree) Paths() []string {
	flat := t.Flatten()
	paths := make([]string, 0, len(flat))
	for p := range flat {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func flatten(out map[string]any, prefix string, m map[string]any) {
	for k, v := range m {
		path := k
		if prefix != "" {
			path = prefix + Separator + k
		}
		if sub, ok := asMap(v); ok && len(sub) > 0 {
			flatten(out, path, sub)
			continue
		}
		out[path] = v
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Tree:
		return m, true
	default:
		return nil, false
	}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case Tree:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// normalize converts decoder-specific container shapes to map[string]any
// and []any, copying as it goes.
func normalize(v any) any {
	switch val := v.(type) {
	case Tree:
		return normalizeMap(val)
	case map[string]any:
		return normalizeMap(val)
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if ks, ok := k.(string); ok {
				out[ks] = normalize(item)
			}
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeMap(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case []string:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = item
		}
		return out
	default:
		return v
	}
}

func normalizeMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalize(v)
	}
	return out
}
