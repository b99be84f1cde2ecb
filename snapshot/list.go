package snapshot

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/Anima18/gradle/hashing"
)

// List is the snapshot of an ordered sequence.
type List struct {
	elems []Node
}

// NewList builds a List over a copy of elems.
func NewList(elems ...Node) *List {
	return &List{elems: append([]Node(nil), elems...)}
}

func (n *List) Len() int { return len(n.elems) }

func (n *List) Elem(i int) Node { return n.elems[i] }

// Elements returns a copy of the children.
func (n *List) Elements() []Node {
	return append([]Node(nil), n.elems...)
}

func (n *List) Shape() Shape { return ShapeList }

func (n *List) AppendTo(h hashing.Hasher) {
	h.PutToken(listToken)
	h.PutInt(int64(len(n.elems)))
	for _, e := range n.elems {
		e.AppendTo(h)
	}
}

func (n *List) Derive(value interface{}, s *Snapshotter) (Node, error) {
	return n.derive(classify(value), s)
}

// derive reuses the longest unchanged prefix. Scanning stops at the first
// element whose derived node is not the previous instance; that node is kept
// and every later element is snapshotted from scratch, even if it happens to
// equal the previous element at the same index.
func (n *List) derive(raw rawValue, s *Snapshotter) (Node, error) {
	if raw.shape != ShapeList {
		return s.fresh(raw)
	}
	seq := raw.seq
	size := seq.Len()
	common := len(n.elems)
	if size < common {
		common = size
	}

	pos := 0
	var diverged Node
	for ; pos < common; pos++ {
		prev := n.elems[pos]
		next, err := s.SnapshotFrom(seq.Index(pos), prev)
		if err != nil {
			return nil, errors.Wrapf(err, "list element %d", pos)
		}
		if next != prev {
			diverged = next
			break
		}
	}
	if pos == len(n.elems) && pos == size {
		return n, nil
	}

	elems := make([]Node, size)
	copy(elems, n.elems[:pos])
	rest := pos
	if diverged != nil {
		elems[pos] = diverged
		rest++
	}
	for i := rest; i < size; i++ {
		e, err := s.Snapshot(seq.Index(i))
		if err != nil {
			return nil, errors.Wrapf(err, "list element %d", i)
		}
		elems[i] = e
	}
	return &List{elems: elems}, nil
}

func (n *List) String() string {
	parts := make([]string, len(n.elems))
	for i, e := range n.elems {
		parts[i] = e.String()
	}
	return listToken + "[" + strings.Join(parts, ", ") + "]"
}
