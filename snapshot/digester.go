package snapshot

import (
	"crypto/sha256"
	"encoding"
	"encoding/hex"
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/golang/protobuf/proto"
	"github.com/pkg/errors"

	scootproto "github.com/Anima18/gradle/common/proto"
	"github.com/Anima18/gradle/common/thrifthelpers"
)

// ErrNotDigestible is returned by an OpaqueDigester that does not handle the
// type of the value it was given.
var ErrNotDigestible = errors.New("no digester accepts value")

// OpaqueDigester produces a stable digest of an opaque value's state. Equal
// values must produce equal digests in every process and every build.
//
//go:generate mockgen -source=digester.go -package=snapshot -destination=mock_digester.go
type OpaqueDigester interface {
	DigestValue(value interface{}) ([]byte, error)
}

// DigesterFunc adapts a function to OpaqueDigester.
type DigesterFunc func(value interface{}) ([]byte, error)

func (f DigesterFunc) DigestValue(value interface{}) ([]byte, error) {
	return f(value)
}

// ChainDigester asks each digester in turn and uses the first one that does
// not answer ErrNotDigestible.
type ChainDigester []OpaqueDigester

func (c ChainDigester) DigestValue(value interface{}) ([]byte, error) {
	for _, d := range c {
		digest, err := d.DigestValue(value)
		if err == ErrNotDigestible {
			continue
		}
		return digest, err
	}
	return nil, ErrNotDigestible
}

// Digester names accepted by DigesterByName.
const (
	ProtoDigesterName  = "proto"
	ThriftDigesterName = "thrift"
	BinaryDigesterName = "binary"
	TextDigesterName   = "text"
)

// DefaultDigester handles protobuf messages, thrift structs, and types with
// binary or text marshalers, in that order.
func DefaultDigester() OpaqueDigester {
	return ChainDigester{ProtoDigester{}, ThriftDigester{}, BinaryDigester{}, TextDigester{}}
}

// DigesterByName resolves one of the digester names.
func DigesterByName(name string) (OpaqueDigester, error) {
	switch name {
	case ProtoDigesterName:
		return ProtoDigester{}, nil
	case ThriftDigesterName:
		return ThriftDigester{}, nil
	case BinaryDigesterName:
		return BinaryDigester{}, nil
	case TextDigesterName:
		return TextDigester{}, nil
	default:
		return nil, fmt.Errorf("Unknown digester %q", name)
	}
}

// ProtoDigester digests protobuf messages by their deterministic wire format.
type ProtoDigester struct{}

func (ProtoDigester) DigestValue(value interface{}) ([]byte, error) {
	pb, ok := value.(proto.Message)
	if !ok {
		return nil, ErrNotDigestible
	}
	sha, _, err := scootproto.GetSha256(pb)
	if err != nil {
		return nil, err
	}
	return hex.DecodeString(sha)
}

// ThriftDigester digests thrift structs by their binary protocol encoding.
type ThriftDigester struct{}

func (ThriftDigester) DigestValue(value interface{}) ([]byte, error) {
	ts, ok := value.(thrift.TStruct)
	if !ok {
		return nil, ErrNotDigestible
	}
	b, err := thrifthelpers.BinarySerialize(ts)
	if err != nil {
		return nil, errors.Wrap(err, "thrift serialize")
	}
	return sha256Of(b), nil
}

// BinaryDigester digests values implementing encoding.BinaryMarshaler.
type BinaryDigester struct{}

func (BinaryDigester) DigestValue(value interface{}) ([]byte, error) {
	m, ok := value.(encoding.BinaryMarshaler)
	if !ok {
		return nil, ErrNotDigestible
	}
	b, err := m.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "binary marshal")
	}
	return sha256Of(b), nil
}

// TextDigester digests values implementing encoding.TextMarshaler.
type TextDigester struct{}

func (TextDigester) DigestValue(value interface{}) ([]byte, error) {
	m, ok := value.(encoding.TextMarshaler)
	if !ok {
		return nil, ErrNotDigestible
	}
	b, err := m.MarshalText()
	if err != nil {
		return nil, errors.Wrap(err, "text marshal")
	}
	return sha256Of(b), nil
}

func sha256Of(b []byte) []byte {
	sum := sha256.Sum256(b)
	return sum[:]
}
