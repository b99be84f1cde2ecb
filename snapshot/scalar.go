package snapshot

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/Anima18/gradle/hashing"
)

// Kind tells apart scalars whose canonical payloads would otherwise look the
// same, e.g. the integer 1 and the float 1.0.
type Kind int

const (
	KindBool Kind = iota + 1
	KindInt
	KindUint
	KindFloat
	KindString
	KindBytes
	// KindNumber holds the exact text of a numeric literal that fits no
	// 64 bit type.
	KindNumber
)

// String is also the discriminator token written to hashers.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindUint:
		return "Uint"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindBytes:
		return "Bytes"
	case KindNumber:
		return "Number"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Scalar is the snapshot of a primitive value. Numeric and boolean payloads
// live in bits, strings and bytes in str.
type Scalar struct {
	kind Kind
	bits uint64
	str  string
}

func NewBool(b bool) *Scalar {
	s := boolScalar(b)
	return &s
}

func NewInt(i int64) *Scalar {
	s := intScalar(i)
	return &s
}

func NewUint(u uint64) *Scalar {
	s := uintScalar(u)
	return &s
}

func NewFloat(f float64) *Scalar {
	s := floatScalar(f)
	return &s
}

func NewString(str string) *Scalar {
	s := stringScalar(str)
	return &s
}

func NewBytes(b []byte) *Scalar {
	s := bytesScalar(b)
	return &s
}

func (n *Scalar) Kind() Kind { return n.kind }

// Value returns the canonical Go value: bool, int64, uint64, float64, string,
// a fresh []byte or a json.Number.
func (n *Scalar) Value() interface{} {
	switch n.kind {
	case KindBool:
		return n.bits == 1
	case KindInt:
		return int64(n.bits)
	case KindUint:
		return n.bits
	case KindFloat:
		return math.Float64frombits(n.bits)
	case KindString:
		return n.str
	case KindBytes:
		return []byte(n.str)
	case KindNumber:
		return json.Number(n.str)
	}
	panic(fmt.Sprintf("snapshot: scalar with invalid kind %v", n.kind))
}

func (n *Scalar) Shape() Shape { return ShapeScalar }

func (n *Scalar) AppendTo(h hashing.Hasher) {
	h.PutToken(n.kind.String())
	switch n.kind {
	case KindString, KindNumber:
		h.PutToken(n.str)
	case KindBytes:
		h.PutInt(int64(len(n.str)))
		h.PutBytes([]byte(n.str))
	default:
		h.PutInt(int64(n.bits))
	}
}

func (n *Scalar) Derive(value interface{}, s *Snapshotter) (Node, error) {
	return n.derive(classify(value), s)
}

func (n *Scalar) derive(raw rawValue, s *Snapshotter) (Node, error) {
	if raw.shape == ShapeScalar && raw.scalar == *n {
		return n, nil
	}
	return s.fresh(raw)
}

func (n *Scalar) String() string {
	var payload string
	switch n.kind {
	case KindBool:
		payload = strconv.FormatBool(n.bits == 1)
	case KindInt:
		payload = strconv.FormatInt(int64(n.bits), 10)
	case KindUint:
		payload = strconv.FormatUint(n.bits, 10)
	case KindFloat:
		payload = strconv.FormatFloat(math.Float64frombits(n.bits), 'g', -1, 64)
	case KindString:
		payload = strconv.Quote(n.str)
	case KindBytes:
		payload = fmt.Sprintf("%x", n.str)
	case KindNumber:
		payload = n.str
	}
	return n.kind.String() + "(" + payload + ")"
}
