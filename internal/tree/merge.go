package tree

// Merge deep-merges src into dst and returns dst.
//
// For every key in src: when both sides hold subtrees they are merged
// recursively; otherwise the src value replaces whatever dst held. Slices
// are replaced, never concatenated. A present nil in src is a value and
// overrides like any other. Values taken from src are deep-copied, so later
// mutation of dst never reaches src. A nil dst is replaced by a new tree.
func Merge(dst, src Tree) Tree {
	if dst == nil {
		dst = New()
	}
	mergeMaps(dst, src)
	return dst
}

func mergeMaps(dst, src map[string]any) {
	for k, sv := range src {
		srcMap, srcIsMap := asMap(sv)
		dstMap, dstIsMap := asMap(dst[k])
		if srcIsMap && dstIsMap {
			mergeMaps(dstMap, srcMap)
			continue
		}
		dst[k] = normalize(sv)
	}
}
