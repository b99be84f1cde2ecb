package snapshot

import (
	"github.com/Anima18/gradle/hashing"
)

// Node is an immutable snapshot of a value. The set of implementations is
// closed: *Null, *Scalar, *List, *Set, *Map and *Opaque.
type Node interface {
	// Shape is the shape of the values this node can derive from.
	Shape() Shape

	// AppendTo writes the node's discriminator and canonical payload into h.
	AppendTo(h hashing.Hasher)

	// Derive returns the node representing value, which logically replaces
	// the value this node was built from. Unchanged content is reused, and if
	// nothing changed the receiver itself is returned.
	Derive(value interface{}, s *Snapshotter) (Node, error)

	String() string

	derive(raw rawValue, s *Snapshotter) (Node, error)
}

// Discriminator tokens. Every node writes one of these before its payload.
const (
	nullToken       = "Null"
	listToken       = "List"
	setToken        = "Set"
	mapToken        = "Map"
	orderedMapToken = "OrderedMap"
	opaqueToken     = "Opaque"
)

// Null is the snapshot of a nil value.
type Null struct{}

var theNull = &Null{}

// NullNode returns the shared Null snapshot.
func NullNode() *Null {
	return theNull
}

func (n *Null) Shape() Shape { return ShapeNull }

func (n *Null) AppendTo(h hashing.Hasher) {
	h.PutToken(nullToken)
}

func (n *Null) Derive(value interface{}, s *Snapshotter) (Node, error) {
	return n.derive(classify(value), s)
}

func (n *Null) derive(raw rawValue, s *Snapshotter) (Node, error) {
	if raw.shape == ShapeNull {
		return n, nil
	}
	return s.fresh(raw)
}

func (n *Null) String() string { return nullToken }

// Walk calls fn for node and then for each of its descendants, depth first
// in canonical child order. Map keys are visited before their values.
func Walk(node Node, fn func(Node)) {
	fn(node)
	switch n := node.(type) {
	case *List:
		for _, e := range n.elems {
			Walk(e, fn)
		}
	case *Set:
		for _, e := range n.elems {
			Walk(e, fn)
		}
	case *Map:
		for _, e := range n.entries {
			Walk(e.Key, fn)
			Walk(e.Value, fn)
		}
	}
}
