package proto

import (
	"testing"

	"github.com/golang/protobuf/ptypes/duration"
	"github.com/golang/protobuf/ptypes/empty"
)

func TestGetSha256(t *testing.T) {
	e := empty.Empty{}
	s, l, err := GetSha256(&e)
	if err != nil {
		t.Fatalf("GetSha256 failure: %v", err)
	}
	// This is what sha-256'ing no data returns
	nilDataSha := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if s != nilDataSha {
		t.Fatalf("Expected known sha for nil/empty data %s, got: %s", nilDataSha, s)
	}
	if l != 0 {
		t.Fatalf("Expected zero length data, got: %d", l)
	}
}

func TestMarshalDeterministicStable(t *testing.T) {
	a, err := MarshalDeterministic(&duration.Duration{Seconds: 3, Nanos: 5})
	if err != nil {
		t.Fatal(err)
	}
	b, err := MarshalDeterministic(&duration.Duration{Seconds: 3, Nanos: 5})
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Fatalf("Expected equal bytes for equal messages, got %x and %x", a, b)
	}
	c, _ := MarshalDeterministic(&duration.Duration{Seconds: 4, Nanos: 5})
	if string(a) == string(c) {
		t.Fatal("Expected different bytes for different messages")
	}
}
