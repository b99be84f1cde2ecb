// Package hashingtest contains a compliance suite for hashing.Hasher
// implementations.
package hashingtest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Anima18/gradle/hashing"
)

// TestHasherCompliance checks the ordering and framing guarantees every
// Hasher must provide. digestLen is the expected digest length in bytes.
func TestHasherCompliance(t *testing.T, f hashing.Factory, digestLen int) {
	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()

		write := func(h hashing.Hasher) {
			h.PutToken("List")
			h.PutInt(2)
			h.PutToken("String")
			h.PutToken("a")
			h.PutBytes([]byte{1, 2, 3})
		}
		a := hashing.Fingerprint(f, write)
		b := hashing.Fingerprint(f, write)
		require.Equal(t, a, b)
		require.Len(t, a.Bytes(), digestLen)
	})

	t.Run("tokens are framed", func(t *testing.T) {
		t.Parallel()

		joined := hashing.Fingerprint(f, func(h hashing.Hasher) {
			h.PutToken("ab")
		})
		split := hashing.Fingerprint(f, func(h hashing.Hasher) {
			h.PutToken("a")
			h.PutToken("b")
		})
		require.NotEqual(t, joined, split)
	})

	t.Run("write order matters", func(t *testing.T) {
		t.Parallel()

		a := hashing.Fingerprint(f, func(h hashing.Hasher) {
			h.PutInt(1)
			h.PutInt(2)
		})
		b := hashing.Fingerprint(f, func(h hashing.Hasher) {
			h.PutInt(2)
			h.PutInt(1)
		})
		require.NotEqual(t, a, b)
	})

	t.Run("size counts bytes", func(t *testing.T) {
		t.Parallel()

		h := f()
		require.Zero(t, h.Size())
		h.PutToken("abc") // 4 byte length prefix + 3
		h.PutInt(7)       // 8
		h.PutBytes([]byte{1, 2})
		require.Equal(t, int64(17), h.Size())
	})

	t.Run("unusable after digest", func(t *testing.T) {
		t.Parallel()

		h := f()
		h.PutInt(1)
		_ = h.Digest()
		require.Panics(t, func() { h.PutInt(2) })
		require.Panics(t, func() { _ = h.Digest() })
	})
}
