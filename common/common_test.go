package common

import (
	"testing"
)

func TestGenUUID(t *testing.T) {
	a, b := GenUUID(), GenUUID()
	if len(a) != 36 {
		t.Fatalf("Expected 36 char uuid, got %q", a)
	}
	if a == b {
		t.Fatalf("Expected distinct uuids, got %s twice", a)
	}
}
