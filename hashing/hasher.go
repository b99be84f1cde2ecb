// Package hashing provides the ordered, write-only hash accumulators that
// snapshot trees are written into to produce build cache keys.
//
// A Hasher is consumed exactly once: every Put call is folded into the digest
// in call order, and Digest ends its life. Calling any method after Digest
// panics, so a hasher accidentally shared between two fingerprint
// computations fails loudly instead of yielding a wrong cache key.
package hashing

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"
	"io"

	"github.com/zeebo/xxh3"
)

// Names of the supported accumulator algorithms.
const (
	SHA256 = "sha256"
	XXH3   = "xxh3"
)

// HashCode is a finished digest. It holds the raw digest bytes, so it is
// comparable and usable as a map key.
type HashCode string

func (h HashCode) Bytes() []byte { return []byte(h) }

func (h HashCode) Hex() string { return hex.EncodeToString([]byte(h)) }

func (h HashCode) String() string { return h.Hex() }

// HashCodeFromHex parses the hex form produced by HashCode.Hex.
func HashCodeFromHex(s string) (HashCode, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("Invalid hash code %q: %v", s, err)
	}
	return HashCode(b), nil
}

// Hasher is the accumulator contract. Implementations are not safe for
// concurrent use; each fingerprint computation needs its own instance.
type Hasher interface {
	// PutToken writes a length-prefixed string.
	PutToken(token string)

	// PutInt writes a fixed-width, big-endian 64 bit integer.
	PutInt(value int64)

	// PutBytes writes the span as-is, without a length prefix.
	PutBytes(b []byte)

	// Size is the number of bytes written so far.
	Size() int64

	// Digest finishes the hasher and returns the digest of everything written.
	Digest() HashCode
}

// Factory creates fresh hashers.
type Factory func() Hasher

// FactoryByName resolves an algorithm name. The empty name selects SHA256.
func FactoryByName(name string) (Factory, error) {
	switch name {
	case "", SHA256:
		return NewSHA256, nil
	case XXH3:
		return NewXXH3, nil
	default:
		return nil, fmt.Errorf("Unknown hasher %q, expected one of %q, %q", name, SHA256, XXH3)
	}
}

// NewSHA256 returns a hasher producing 32 byte SHA-256 digests.
func NewSHA256() Hasher {
	h := sha256.New()
	return &streamHasher{w: h, sum: func() []byte { return h.Sum(nil) }}
}

// NewXXH3 returns a hasher producing 16 byte XXH3-128 digests.
func NewXXH3() Hasher {
	h := xxh3.New()
	return &streamHasher{w: h, sum: func() []byte {
		b := h.Sum128().Bytes()
		return b[:]
	}}
}

// NewHashHasher adapts any standard library hash to the Hasher contract.
func NewHashHasher(h hash.Hash) Hasher {
	return &streamHasher{w: h, sum: func() []byte { return h.Sum(nil) }}
}

type streamHasher struct {
	w    io.Writer
	sum  func() []byte
	buf  [8]byte
	size int64
	done bool
}

func (s *streamHasher) write(p []byte) {
	if s.done {
		panic("hashing: hasher used after Digest")
	}
	// Writes to in-memory hashes never fail.
	_, _ = s.w.Write(p)
	s.size += int64(len(p))
}

func (s *streamHasher) PutToken(token string) {
	binary.BigEndian.PutUint32(s.buf[:4], uint32(len(token)))
	s.write(s.buf[:4])
	s.write([]byte(token))
}

func (s *streamHasher) PutInt(value int64) {
	binary.BigEndian.PutUint64(s.buf[:8], uint64(value))
	s.write(s.buf[:8])
}

func (s *streamHasher) PutBytes(b []byte) {
	s.write(b)
}

func (s *streamHasher) Size() int64 {
	return s.size
}

func (s *streamHasher) Digest() HashCode {
	if s.done {
		panic("hashing: Digest called twice")
	}
	s.done = true
	return HashCode(s.sum())
}

// Fingerprint runs write against a fresh hasher from f and returns its digest.
// The hasher does not escape, which keeps one accumulator per computation.
func Fingerprint(f Factory, write func(Hasher)) HashCode {
	code, _ := Sum(f, write)
	return code
}

// Sum is like Fingerprint but also reports how many bytes were hashed.
func Sum(f Factory, write func(Hasher)) (HashCode, int64) {
	h := f()
	write(h)
	size := h.Size()
	return h.Digest(), size
}
