package chartconfig

// Merge overlays patch onto base and returns a new tree. Objects present on both
// sides are merged key by key; every other patch value (arrays included) replaces
// the base value wholesale. Neither argument is modified.
func Merge(base, patch Tree) Tree {
	out := Clone(base)
	mergeInto(out, patch)
	return out
}

func mergeInto(dst, patch Tree) {
	for key, pv := range patch {
		pm, ok := pv.(map[string]any)
		if !ok {
			dst[key] = cloneValue(pv)
			continue
		}
		if dm, ok := dst[key].(map[string]any); ok {
			mergeInto(dm, pm)
			continue
		}
		dst[key] = Clone(pm)
	}
}
