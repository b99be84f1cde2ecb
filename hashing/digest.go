package hashing

// Conversions between HashCodes and remote execution Digests, which is the
// form cache keys take when they leave this process.

import (
	"fmt"
	"strconv"
	"strings"

	remoteexecution "google.golang.org/genproto/googleapis/devtools/remoteexecution/v1test"
)

// ToDigest wraps a hash code and the number of bytes hashed into a Digest.
func ToDigest(code HashCode, size int64) *remoteexecution.Digest {
	return &remoteexecution.Digest{Hash: code.Hex(), SizeBytes: size}
}

// DigestOf fingerprints write with a fresh hasher from f and returns the Digest.
func DigestOf(f Factory, write func(Hasher)) *remoteexecution.Digest {
	return ToDigest(Sum(f, write))
}

// Validate Digest hash and size components for the supported algorithms:
// 64 hex chars for SHA-256, 32 for XXH3-128.
func IsValidDigest(hash string, size int64) bool {
	if len(hash) != 64 && len(hash) != 32 {
		return false
	}
	if _, err := HashCodeFromHex(hash); err != nil {
		return false
	}
	return size >= 0
}

func DigestToStr(d *remoteexecution.Digest) string {
	if d == nil || d.GetHash() == "" {
		return ""
	}
	return fmt.Sprintf("%s/%d", d.GetHash(), d.GetSizeBytes())
}

// Create a Digest from the string format "<hash>/<size>".
func DigestFromString(s string) (*remoteexecution.Digest, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return nil, fmt.Errorf("Invalid format, expected '<hash>/<size>', was %q", s)
	}
	size, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("Invalid size in digest %q: %v", s, err)
	}
	if !IsValidDigest(parts[0], size) {
		return nil, fmt.Errorf("Error: Invalid digest. Hash: %s, size: %d", parts[0], size)
	}
	return &remoteexecution.Digest{Hash: parts[0], SizeBytes: size}, nil
}

func DigestsEqual(a, b *remoteexecution.Digest) bool {
	if a == nil || b == nil {
		return false
	}
	return a.GetHash() == b.GetHash() && a.GetSizeBytes() == b.GetSizeBytes()
}
