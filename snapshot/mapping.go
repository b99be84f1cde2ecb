package snapshot

import (
	"sort"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"

	"github.com/Anima18/gradle/hashing"
)

// MapEntry is one key/value pair of a Map.
type MapEntry struct {
	Key   Node
	Value Node
}

// Map is the snapshot of a mapping. An ordered Map keeps its source's pair
// order and derives like a List over its pairs. An unordered Map keeps pairs
// in ascending order of key digest and derives by matching key digests.
type Map struct {
	ordered    bool
	entries    []MapEntry
	keyDigests []hashing.HashCode // unordered only, parallel to entries
}

// NewOrderedMap builds an ordered Map over a copy of entries.
func NewOrderedMap(entries ...MapEntry) *Map {
	return &Map{ordered: true, entries: append([]MapEntry(nil), entries...)}
}

// NewMap builds an unordered Map, using hashers to order the keys. Later
// entries with an already present key are dropped.
func NewMap(hashers hashing.Factory, entries ...MapEntry) *Map {
	keyed := make([]keyedEntry, 0, len(entries))
	seen := make(map[hashing.HashCode]bool, len(entries))
	for _, e := range entries {
		d := hashing.Fingerprint(hashers, e.Key.AppendTo)
		if seen[d] {
			continue
		}
		seen[d] = true
		keyed = append(keyed, keyedEntry{e, d})
	}
	return newUnorderedMap(keyed)
}

type keyedEntry struct {
	entry  MapEntry
	digest hashing.HashCode
}

func newUnorderedMap(keyed []keyedEntry) *Map {
	sort.Slice(keyed, func(i, j int) bool { return keyed[i].digest < keyed[j].digest })
	m := &Map{
		entries:    make([]MapEntry, len(keyed)),
		keyDigests: make([]hashing.HashCode, len(keyed)),
	}
	for i, k := range keyed {
		m.entries[i] = k.entry
		m.keyDigests[i] = k.digest
	}
	return m
}

func (n *Map) Len() int { return len(n.entries) }

func (n *Map) Ordered() bool { return n.ordered }

func (n *Map) Entry(i int) MapEntry { return n.entries[i] }

// Entries returns a copy of the pairs in canonical order.
func (n *Map) Entries() []MapEntry {
	return append([]MapEntry(nil), n.entries...)
}

func (n *Map) Shape() Shape { return ShapeMap }

func (n *Map) token() string {
	if n.ordered {
		return orderedMapToken
	}
	return mapToken
}

func (n *Map) AppendTo(h hashing.Hasher) {
	h.PutToken(n.token())
	h.PutInt(int64(len(n.entries)))
	for _, e := range n.entries {
		e.Key.AppendTo(h)
		e.Value.AppendTo(h)
	}
}

func (n *Map) Derive(value interface{}, s *Snapshotter) (Node, error) {
	return n.derive(classify(value), s)
}

func (n *Map) derive(raw rawValue, s *Snapshotter) (Node, error) {
	// A mapping that changed its ordering guarantee is a different shape.
	if raw.shape != ShapeMap || raw.mapping.Ordered() != n.ordered {
		return s.fresh(raw)
	}
	if n.ordered {
		return n.deriveOrdered(collectPairs(raw.mapping), s)
	}
	return n.deriveUnordered(raw.mapping, s)
}

// deriveOrdered is the List prefix diff applied to pairs. A pair differs when
// its key or its value differs; a changed key also discards the previous
// value, since it belonged to another key.
func (n *Map) deriveOrdered(pairs Pairs, s *Snapshotter) (Node, error) {
	size := len(pairs)
	common := len(n.entries)
	if size < common {
		common = size
	}

	pos := 0
	var diverged *MapEntry
	for ; pos < common; pos++ {
		prev := n.entries[pos]
		key, err := s.SnapshotFrom(pairs[pos].Key, prev.Key)
		if err != nil {
			return nil, errors.Wrapf(err, "map key %d", pos)
		}
		var value Node
		if key == prev.Key {
			value, err = s.SnapshotFrom(pairs[pos].Value, prev.Value)
		} else {
			value, err = s.Snapshot(pairs[pos].Value)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "map value %d", pos)
		}
		if key != prev.Key || value != prev.Value {
			diverged = &MapEntry{key, value}
			break
		}
	}
	if pos == len(n.entries) && pos == size {
		return n, nil
	}

	entries := make([]MapEntry, size)
	copy(entries, n.entries[:pos])
	rest := pos
	if diverged != nil {
		entries[pos] = *diverged
		rest++
	}
	for i := rest; i < size; i++ {
		e, err := s.snapshotEntry(pairs[i].Key, pairs[i].Value)
		if err != nil {
			return nil, errors.Wrapf(err, "map entry %d", i)
		}
		entries[i] = e
	}
	return &Map{ordered: true, entries: entries}, nil
}

// deriveUnordered matches pairs by key digest. Matched keys keep their
// previous instance and their values derive from the previous value.
func (n *Map) deriveUnordered(m Mapping, s *Snapshotter) (Node, error) {
	index := make(map[hashing.HashCode]int, len(n.keyDigests))
	for i, d := range n.keyDigests {
		index[d] = i
	}
	unchanged := bitset.New(uint(len(n.entries)))

	var err error
	keyed := make([]keyedEntry, 0, m.Len())
	seen := make(map[hashing.HashCode]bool, m.Len())
	m.Range(func(k, v interface{}) {
		if err != nil {
			return
		}
		key, keyErr := s.Snapshot(k)
		if keyErr != nil {
			err = errors.Wrap(keyErr, "map key")
			return
		}
		d := s.Digest(key)
		if seen[d] {
			return
		}
		seen[d] = true

		var value Node
		var valueErr error
		if i, ok := index[d]; ok {
			prev := n.entries[i]
			key = prev.Key
			value, valueErr = s.SnapshotFrom(v, prev.Value)
			if valueErr == nil && value == prev.Value {
				unchanged.Set(uint(i))
			}
		} else {
			value, valueErr = s.Snapshot(v)
		}
		if valueErr != nil {
			err = errors.Wrapf(valueErr, "map value for key %s", key)
			return
		}
		keyed = append(keyed, keyedEntry{MapEntry{key, value}, d})
	})
	if err != nil {
		return nil, err
	}
	if len(keyed) == len(n.entries) && unchanged.Count() == uint(len(n.entries)) {
		return n, nil
	}
	return newUnorderedMap(keyed), nil
}

func (n *Map) String() string {
	parts := make([]string, len(n.entries))
	for i, e := range n.entries {
		parts[i] = e.Key.String() + ": " + e.Value.String()
	}
	return n.token() + "{" + strings.Join(parts, ", ") + "}"
}
