package snapshot

import (
	"testing"
)

func TestSetOrderIndependence(t *testing.T) {
	s := NewSnapshotter(nil, nil, nil)
	a := mustSnapshot(t, s, Unordered{"a", "b", int64(3), []string{"x"}})
	b := mustSnapshot(t, s, Unordered{[]string{"x"}, int64(3), "b", "a"})
	if !Equal(a, b) {
		t.Fatalf("Expected equal sets:\n%s\n%s", Render(a), Render(b))
	}
	if s.Digest(a) != s.Digest(b) {
		t.Fatalf("Equal sets hashed differently")
	}
	if a.String() != b.String() {
		t.Fatalf("Sets should list children in canonical order: %s vs %s", a, b)
	}
}

func TestSetDuplicatesCollapse(t *testing.T) {
	s := NewSnapshotter(nil, nil, nil)
	set := mustSnapshot(t, s, Unordered{"a", "a", "b"}).(*Set)
	if set.Len() != 2 {
		t.Fatalf("Expected duplicates to collapse, got %s", set)
	}
	if !Equal(set, mustSnapshot(t, s, Unordered{"b", "a"})) {
		t.Fatalf("Expected {a, b}, got %s", set)
	}
}

func TestSetDeriveReusesMatchingChildren(t *testing.T) {
	s := NewSnapshotter(nil, nil, nil)
	prev := mustSnapshot(t, s, Unordered{"a", []int{1, 2}}).(*Set)
	next := mustDerive(t, s, Unordered{[]int{1, 2}, "a", "c"}, prev).(*Set)

	if next == prev {
		t.Fatalf("An added element must produce a new set")
	}
	if next.Len() != 3 {
		t.Fatalf("Expected 3 elements, got %s", next)
	}
	reused := 0
	for _, e := range next.Elements() {
		for _, p := range prev.Elements() {
			if e == p {
				reused++
			}
		}
	}
	if reused != 2 {
		t.Fatalf("Expected both previous children to be reused, got %d", reused)
	}

	removed := mustDerive(t, s, Unordered{"a"}, prev).(*Set)
	if removed.Len() != 1 || !Equal(removed.Elements()[0], NewString("a")) {
		t.Fatalf("Expected {a}, got %s", removed)
	}
}

func TestOrderedMapValueChange(t *testing.T) {
	s := NewSnapshotter(nil, nil, nil)
	prev := mustSnapshot(t, s, Pairs{{"a", 1}, {"b", 2}, {"c", 3}}).(*Map)
	next := mustDerive(t, s, Pairs{{"a", 1}, {"b", 5}, {"c", 3}}, prev).(*Map)

	if !next.Ordered() {
		t.Fatalf("Derived map lost its ordering")
	}
	if next.Entry(0) != prev.Entry(0) {
		t.Fatalf("Pair 0 precedes the change and must be reused")
	}
	if next.Entry(1).Key != prev.Entry(1).Key {
		t.Fatalf("The unchanged key at the changed pair should be reused")
	}
	if next.Entry(1).Value == prev.Entry(1).Value || !Equal(next.Entry(1).Value, NewInt(5)) {
		t.Fatalf("Expected value 5 at pair 1, got %s", next.Entry(1).Value)
	}
	if next.Entry(2).Key == prev.Entry(2).Key {
		t.Fatalf("Pairs after the change are rebuilt")
	}
}

func TestOrderedMapKeyChangeRebuildsPair(t *testing.T) {
	s := NewSnapshotter(nil, nil, nil)
	prev := mustSnapshot(t, s, Pairs{{"a", []int{1}}, {"b", []int{2}}}).(*Map)
	next := mustDerive(t, s, Pairs{{"a", []int{1}}, {"z", []int{2}}}, prev).(*Map)

	if next.Entry(0) != prev.Entry(0) {
		t.Fatalf("Pair 0 should be reused")
	}
	if next.Entry(1).Value == prev.Entry(1).Value {
		t.Fatalf("A value under a changed key must not be reused")
	}
	if !Equal(next.Entry(1).Value, prev.Entry(1).Value) {
		t.Fatalf("The rebuilt value should still equal [2]")
	}
}

func TestOrderedMapIsOrderSensitive(t *testing.T) {
	s := NewSnapshotter(nil, nil, nil)
	a := mustSnapshot(t, s, Pairs{{"a", 1}, {"b", 2}})
	b := mustSnapshot(t, s, Pairs{{"b", 2}, {"a", 1}})
	if Equal(a, b) || s.Digest(a) == s.Digest(b) {
		t.Fatalf("Reordered pairs of an ordered map should differ")
	}
}

func TestUnorderedMapDerive(t *testing.T) {
	s := NewSnapshotter(nil, nil, nil)
	prev := mustSnapshot(t, s, map[string]int{"a": 1, "b": 2, "c": 3}).(*Map)
	next := mustDerive(t, s, map[string]int{"a": 1, "b": 5, "c": 3}, prev).(*Map)

	if next.Ordered() || next.Len() != 3 {
		t.Fatalf("Unexpected map %s", next)
	}
	for i := 0; i < next.Len(); i++ {
		e, p := next.Entry(i), prev.Entry(i)
		if e.Key != p.Key {
			t.Fatalf("Key %s should be reused", p.Key)
		}
		changed := Equal(e.Key, NewString("b"))
		if changed && (e.Value == p.Value || !Equal(e.Value, NewInt(5))) {
			t.Fatalf("Expected b to map to a new Int(5), got %s", e.Value)
		}
		if !changed && e.Value != p.Value {
			t.Fatalf("Value under %s should be reused", e.Key)
		}
	}

	if mustDerive(t, s, map[string]int{"c": 3, "b": 2, "a": 1}, prev) != prev {
		t.Fatalf("An unchanged Go map should derive to the previous node")
	}
}

func TestMapOrderingChangeRebuilds(t *testing.T) {
	s := NewSnapshotter(nil, nil, nil)
	prev := mustSnapshot(t, s, map[string]int{"a": 1}).(*Map)
	next := mustDerive(t, s, Pairs{{"a", 1}}, prev).(*Map)
	if !next.Ordered() {
		t.Fatalf("Expected an ordered map")
	}
	if next.Entry(0).Key == prev.Entry(0).Key {
		t.Fatalf("No reuse is expected across map orderings")
	}
}

func TestConstructorsMatchSnapshots(t *testing.T) {
	s := NewSnapshotter(nil, nil, nil)
	built := NewMap(s.Hashers(),
		MapEntry{NewString("list"), NewList(NewInt(1), NullNode())},
		MapEntry{NewString("set"), NewSet(s.Hashers(), NewBool(true), NewFloat(2.5))},
		MapEntry{NewString("pairs"), NewOrderedMap(MapEntry{NewUint(7), NewBytes([]byte{0xff})})},
	)
	snapped := mustSnapshot(t, s, map[string]interface{}{
		"list":  []interface{}{1, nil},
		"set":   Unordered{2.5, true},
		"pairs": Pairs{{uint8(7), []byte{0xff}}},
	})
	if !Equal(built, snapped) || s.Digest(built) != s.Digest(snapped) {
		t.Fatalf("Constructed and snapshotted trees differ:\n%s\n%s", Render(built), Render(snapped))
	}
}
