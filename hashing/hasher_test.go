package hashing_test

import (
	"crypto/md5"
	"testing"

	"github.com/Anima18/gradle/hashing"
	"github.com/Anima18/gradle/hashing/hashingtest"
)

func TestSHA256Compliance(t *testing.T) {
	hashingtest.TestHasherCompliance(t, hashing.NewSHA256, 32)
}

func TestXXH3Compliance(t *testing.T) {
	hashingtest.TestHasherCompliance(t, hashing.NewXXH3, 16)
}

func TestHashHasherCompliance(t *testing.T) {
	hashingtest.TestHasherCompliance(t, func() hashing.Hasher {
		return hashing.NewHashHasher(md5.New())
	}, md5.Size)
}

func TestEmptySHA256(t *testing.T) {
	// This is what sha-256'ing no data returns
	emptySha := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	code := hashing.Fingerprint(hashing.NewSHA256, func(hashing.Hasher) {})
	if code.Hex() != emptySha {
		t.Fatalf("Expected known sha for empty input %s, got: %s", emptySha, code)
	}
}

func TestFactoryByName(t *testing.T) {
	for _, name := range []string{"", hashing.SHA256, hashing.XXH3} {
		if f, err := hashing.FactoryByName(name); err != nil || f == nil {
			t.Fatalf("Expected factory for %q, got err: %v", name, err)
		}
	}
	if _, err := hashing.FactoryByName("md4"); err == nil {
		t.Fatal("Expected error for unknown hasher")
	}
}

func TestHashCodeHexRoundTrip(t *testing.T) {
	code := hashing.Fingerprint(hashing.NewXXH3, func(h hashing.Hasher) { h.PutToken("x") })
	parsed, err := hashing.HashCodeFromHex(code.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if parsed != code {
		t.Fatalf("Expected %s, got %s", code, parsed)
	}
	if _, err := hashing.HashCodeFromHex("zz"); err == nil {
		t.Fatal("Expected error parsing non-hex hash code")
	}
}
