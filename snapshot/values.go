package snapshot

// Unordered is an unordered collection of raw values; it snapshots as a Set.
// Duplicate elements collapse into one.
type Unordered []interface{}

func (u Unordered) Len() int { return len(u) }

func (u Unordered) Each(fn func(elem interface{})) {
	for _, e := range u {
		fn(e)
	}
}

// Pair is one entry of a Pairs mapping.
type Pair struct {
	Key   interface{}
	Value interface{}
}

// Pairs is an insertion ordered mapping; it snapshots as an ordered Map.
type Pairs []Pair

func (p Pairs) Len() int      { return len(p) }
func (p Pairs) Ordered() bool { return true }

func (p Pairs) Range(fn func(key, value interface{})) {
	for _, e := range p {
		fn(e.Key, e.Value)
	}
}

// collectPairs drains a Mapping into a slice, preserving Range order.
func collectPairs(m Mapping) Pairs {
	if p, ok := m.(Pairs); ok {
		return p
	}
	pairs := make(Pairs, 0, m.Len())
	m.Range(func(k, v interface{}) {
		pairs = append(pairs, Pair{k, v})
	})
	return pairs
}
