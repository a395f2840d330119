package schema

// orderedGroups accumulates values under keys and yields the groups in the
// order each key was first seen.
type orderedGroups[K comparable, V any] struct {
	index  map[K]int
	groups []V
}

func newOrderedGroups[K comparable, V any]() *orderedGroups[K, V] {
	return &orderedGroups[K, V]{index: make(map[K]int)}
}

// get returns the group for key, creating it with init on first sight.
func (g *orderedGroups[K, V]) get(key K, init func() V) *V {
	i, ok := g.index[key]
	if !ok {
		i = len(g.groups)
		g.index[key] = i
		g.groups = append(g.groups, init())
	}
	return &g.groups[i]
}

// values returns the groups in first-insertion order.
func (g *orderedGroups[K, V]) values() []V {
	return g.groups
}
