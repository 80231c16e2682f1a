package schema

// Delta describes the change set from an older flattened schema to a newer one.
// The sets are disjoint:
//
//   - Added: keys present only in the newer schema (newer order)
//   - Changed: keys present in both with unequal descriptors, newer value (newer order)
//   - Removed: keys present only in the older schema (older order)
type Delta struct {
	Added   *Settings
	Changed *Settings
	Removed []string
}

// Empty reports whether the delta carries no key-level change.
func (d Delta) Empty() bool {
	return d.Added.Len() == 0 && d.Changed.Len() == 0 && len(d.Removed) == 0
}

// Diff computes the change set between two flattened schemas.
func Diff(older, newer *Settings) Delta {
	d := Delta{
		Added:   EmptySettings(),
		Changed: EmptySettings(),
		Removed: make([]string, 0),
	}
	for _, key := range older.Keys() {
		if !newer.Has(key) {
			d.Removed = append(d.Removed, key)
		}
	}
	for _, key := range newer.Keys() {
		nd, _ := newer.Get(key)
		od, ok := older.Get(key)
		if !ok {
			d.Added.Set(key, nd)
			continue
		}
		if !nd.Equal(od) {
			d.Changed.Set(key, nd)
		}
	}
	return d
}
