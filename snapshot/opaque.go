package snapshot

import (
	"fmt"

	"github.com/Anima18/gradle/hashing"
)

// Opaque is the snapshot of a value that could not be decomposed. It carries
// the value's type name and the digest an OpaqueDigester produced for it.
type Opaque struct {
	typeName string
	digest   hashing.HashCode
}

// NewOpaque builds an Opaque from a type name and a content digest.
func NewOpaque(typeName string, digest []byte) *Opaque {
	return &Opaque{typeName: typeName, digest: hashing.HashCode(digest)}
}

func (n *Opaque) TypeName() string { return n.typeName }

func (n *Opaque) Digest() hashing.HashCode { return n.digest }

func (n *Opaque) Shape() Shape { return ShapeOpaque }

func (n *Opaque) AppendTo(h hashing.Hasher) {
	h.PutToken(opaqueToken)
	h.PutToken(n.typeName)
	h.PutInt(int64(len(n.digest)))
	h.PutBytes(n.digest.Bytes())
}

func (n *Opaque) Derive(value interface{}, s *Snapshotter) (Node, error) {
	return n.derive(classify(value), s)
}

func (n *Opaque) derive(raw rawValue, s *Snapshotter) (Node, error) {
	if raw.shape != ShapeOpaque {
		return s.fresh(raw)
	}
	typeName, digest, err := s.digestOpaque(raw.value)
	if err != nil {
		return nil, err
	}
	if typeName == n.typeName && digest == n.digest {
		return n, nil
	}
	return &Opaque{typeName: typeName, digest: digest}, nil
}

func (n *Opaque) String() string {
	hex := n.digest.Hex()
	if len(hex) > 12 {
		hex = hex[:12]
	}
	return fmt.Sprintf("%s(%s:%s)", opaqueToken, n.typeName, hex)
}
