package snapshot

import (
	"sort"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"

	"github.com/Anima18/gradle/hashing"
)

// Set is the snapshot of an unordered collection. Children are kept in
// ascending order of their digests, which is also the order they are hashed
// in, so construction order never shows.
type Set struct {
	elems   []Node
	digests []hashing.HashCode
}

type digestedNode struct {
	node   Node
	digest hashing.HashCode
}

// NewSet builds a Set over elems, using hashers to order them. Elements with
// equal digests collapse into one.
func NewSet(hashers hashing.Factory, elems ...Node) *Set {
	entries := make([]digestedNode, 0, len(elems))
	seen := make(map[hashing.HashCode]bool, len(elems))
	for _, e := range elems {
		d := hashing.Fingerprint(hashers, e.AppendTo)
		if seen[d] {
			continue
		}
		seen[d] = true
		entries = append(entries, digestedNode{e, d})
	}
	return newSetFromEntries(entries)
}

func newSetFromEntries(entries []digestedNode) *Set {
	sort.Slice(entries, func(i, j int) bool { return entries[i].digest < entries[j].digest })
	set := &Set{
		elems:   make([]Node, len(entries)),
		digests: make([]hashing.HashCode, len(entries)),
	}
	for i, e := range entries {
		set.elems[i] = e.node
		set.digests[i] = e.digest
	}
	return set
}

func (n *Set) Len() int { return len(n.elems) }

// Elements returns a copy of the children in canonical order.
func (n *Set) Elements() []Node {
	return append([]Node(nil), n.elems...)
}

func (n *Set) Shape() Shape { return ShapeSet }

func (n *Set) AppendTo(h hashing.Hasher) {
	h.PutToken(setToken)
	h.PutInt(int64(len(n.elems)))
	for _, e := range n.elems {
		e.AppendTo(h)
	}
}

func (n *Set) Derive(value interface{}, s *Snapshotter) (Node, error) {
	return n.derive(classify(value), s)
}

// derive matches elements by digest rather than position. Each new element
// whose digest was already present is replaced by the previous instance; the
// receiver is returned when every previous element was matched and nothing
// was added.
func (n *Set) derive(raw rawValue, s *Snapshotter) (Node, error) {
	if raw.shape != ShapeSet {
		return s.fresh(raw)
	}
	index := make(map[hashing.HashCode]int, len(n.digests))
	for i, d := range n.digests {
		index[d] = i
	}
	matched := bitset.New(uint(len(n.elems)))

	var err error
	entries := make([]digestedNode, 0, raw.coll.Len())
	seen := make(map[hashing.HashCode]bool, raw.coll.Len())
	raw.coll.Each(func(elem interface{}) {
		if err != nil {
			return
		}
		node, snapErr := s.Snapshot(elem)
		if snapErr != nil {
			err = errors.Wrap(snapErr, "set element")
			return
		}
		d := s.Digest(node)
		if seen[d] {
			return
		}
		seen[d] = true
		if i, ok := index[d]; ok {
			matched.Set(uint(i))
			node = n.elems[i]
		}
		entries = append(entries, digestedNode{node, d})
	})
	if err != nil {
		return nil, err
	}
	if len(entries) == len(n.elems) && matched.Count() == uint(len(n.elems)) {
		return n, nil
	}
	return newSetFromEntries(entries), nil
}

func (n *Set) String() string {
	parts := make([]string, len(n.elems))
	for i, e := range n.elems {
		parts[i] = e.String()
	}
	return setToken + "{" + strings.Join(parts, ", ") + "}"
}
