package snapshot

import (
	"fmt"

	"github.com/Anima18/gradle/hashing"
)

// Equal reports whether a and b are the same variant with recursively equal
// content. Sets, and unordered Maps, compare as collections, so nodes built
// with different hashers still compare equal.
func Equal(a, b Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	switch x := a.(type) {
	case *Null:
		_, ok := b.(*Null)
		return ok
	case *Scalar:
		y, ok := b.(*Scalar)
		return ok && *x == *y
	case *List:
		y, ok := b.(*List)
		return ok && nodesEqual(x.elems, y.elems)
	case *Set:
		y, ok := b.(*Set)
		if !ok || len(x.elems) != len(y.elems) {
			return false
		}
		if digestsEqual(x.digests, y.digests) {
			return nodesEqual(x.elems, y.elems)
		}
		return sameMembers(len(x.elems), func(i, j int) bool { return Equal(x.elems[i], y.elems[j]) })
	case *Map:
		y, ok := b.(*Map)
		if !ok || x.ordered != y.ordered || len(x.entries) != len(y.entries) {
			return false
		}
		if x.ordered || digestsEqual(x.keyDigests, y.keyDigests) {
			return entriesEqual(x.entries, y.entries)
		}
		return sameMembers(len(x.entries), func(i, j int) bool {
			return Equal(x.entries[i].Key, y.entries[j].Key) && Equal(x.entries[i].Value, y.entries[j].Value)
		})
	case *Opaque:
		y, ok := b.(*Opaque)
		return ok && x.typeName == y.typeName && x.digest == y.digest
	}
	panic(fmt.Sprintf("snapshot: unknown node type %T", a))
}

func nodesEqual(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func entriesEqual(a, b []MapEntry) bool {
	for i := range a {
		if !Equal(a[i].Key, b[i].Key) || !Equal(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

func digestsEqual(a, b []hashing.HashCode) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// sameMembers matches n members of one collection against n members of
// another. Members within one collection are distinct, so a greedy match
// suffices.
func sameMembers(n int, eq func(i, j int) bool) bool {
	used := make([]bool, n)
	for i := 0; i < n; i++ {
		found := false
		for j := 0; j < n; j++ {
			if !used[j] && eq(i, j) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
