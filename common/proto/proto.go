// Library for protobuf-related tools.
package proto

import (
	"crypto/sha256"
	"fmt"

	"github.com/golang/protobuf/proto"
)

// MarshalDeterministic returns the wire format of pb with map entries in a
// stable order, so equal messages always produce equal bytes.
func MarshalDeterministic(pb proto.Message) ([]byte, error) {
	buf := proto.NewBuffer(nil)
	buf.SetDeterministic(true)
	if err := buf.Marshal(pb); err != nil {
		return nil, fmt.Errorf("Failed to marshal protobuf message: %v", err)
	}
	return buf.Bytes(), nil
}

// GetSha256 returns the SHA-256 digest of the deterministic wire format of any
// protobuf message and the length in bytes of the message, or an error.
func GetSha256(pb proto.Message) (string, int64, error) {
	bytes, err := MarshalDeterministic(pb)
	if err != nil {
		return "", 0, err
	}
	sha := fmt.Sprintf("%x", sha256.Sum256(bytes))
	return sha, int64(len(bytes)), nil
}
