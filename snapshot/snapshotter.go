package snapshot

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/Anima18/gradle/common/stats"
	"github.com/Anima18/gradle/hashing"
)

// Snapshotter turns raw values into Nodes. It holds configuration and
// instruments only, so one Snapshotter may serve any number of goroutines.
type Snapshotter struct {
	hashers  hashing.Factory
	digester OpaqueDigester

	freshCounter  stats.Counter
	deriveCounter stats.Counter
	reusedCounter stats.Counter
	shapeCounter  stats.Counter
	opaqueCounter stats.Counter
	unsnapCounter stats.Counter
}

// NewSnapshotter creates a Snapshotter. hashers orders Set elements and
// unordered Map keys; digester handles opaque values. Nil arguments select
// SHA-256, DefaultDigester and no stats. Counters are registered under the
// "snapshotter" scope of stat.
func NewSnapshotter(hashers hashing.Factory, digester OpaqueDigester, stat stats.StatsReceiver) *Snapshotter {
	if hashers == nil {
		hashers = hashing.NewSHA256
	}
	if digester == nil {
		digester = DefaultDigester()
	}
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	stat = stat.Scope("snapshotter")
	return &Snapshotter{
		hashers:       hashers,
		digester:      digester,
		freshCounter:  stat.Counter(stats.SnapshotterFreshCounter),
		deriveCounter: stat.Counter(stats.SnapshotterDeriveCounter),
		reusedCounter: stat.Counter(stats.SnapshotterDeriveReusedCounter),
		shapeCounter:  stat.Counter(stats.SnapshotterShapeChangeCounter),
		opaqueCounter: stat.Counter(stats.SnapshotterOpaqueDigestCounter),
		unsnapCounter: stat.Counter(stats.SnapshotterUnsnapshottableCounter),
	}
}

// Hashers returns the hasher factory this Snapshotter orders digests with.
func (s *Snapshotter) Hashers() hashing.Factory {
	return s.hashers
}

// Snapshot builds a new Node tree for value with no previous state.
func (s *Snapshotter) Snapshot(value interface{}) (Node, error) {
	return s.fresh(classify(value))
}

// SnapshotFrom builds the Node for value given the Node previously built for
// the same logical value. When previous has the shape of value, previous
// derives the result and may return itself; otherwise previous is discarded.
// A nil previous is the same as calling Snapshot.
func (s *Snapshotter) SnapshotFrom(value interface{}, previous Node) (Node, error) {
	if previous == nil {
		return s.Snapshot(value)
	}
	raw := classify(value)
	if raw.shape != previous.Shape() {
		s.shapeCounter.Inc(1)
		log.Debugf("Value changed shape from %s to %s, snapshotting from scratch", previous.Shape(), raw.shape)
		return s.fresh(raw)
	}
	s.deriveCounter.Inc(1)
	node, err := previous.derive(raw, s)
	if err != nil {
		return nil, err
	}
	if node == previous {
		s.reusedCounter.Inc(1)
	}
	return node, nil
}

// Digest fingerprints a single node with this Snapshotter's hashers.
func (s *Snapshotter) Digest(n Node) hashing.HashCode {
	return hashing.Fingerprint(s.hashers, n.AppendTo)
}

func (s *Snapshotter) fresh(raw rawValue) (Node, error) {
	s.freshCounter.Inc(1)
	switch raw.shape {
	case ShapeNull:
		return theNull, nil
	case ShapeScalar:
		sc := raw.scalar
		return &sc, nil
	case ShapeList:
		return s.freshList(raw.seq)
	case ShapeSet:
		return s.freshSet(raw.coll)
	case ShapeMap:
		return s.freshMap(raw.mapping)
	case ShapeOpaque:
		typeName, digest, err := s.digestOpaque(raw.value)
		if err != nil {
			return nil, err
		}
		return &Opaque{typeName: typeName, digest: digest}, nil
	}
	panic(fmt.Sprintf("snapshot: unhandled shape %v", raw.shape))
}

func (s *Snapshotter) freshList(seq Sequence) (Node, error) {
	elems := make([]Node, seq.Len())
	for i := range elems {
		e, err := s.Snapshot(seq.Index(i))
		if err != nil {
			return nil, wrapf(err, "list element %d", i)
		}
		elems[i] = e
	}
	return &List{elems: elems}, nil
}

func (s *Snapshotter) freshSet(coll Collection) (Node, error) {
	var err error
	entries := make([]digestedNode, 0, coll.Len())
	seen := make(map[hashing.HashCode]bool, coll.Len())
	coll.Each(func(elem interface{}) {
		if err != nil {
			return
		}
		node, snapErr := s.Snapshot(elem)
		if snapErr != nil {
			err = wrapf(snapErr, "set element")
			return
		}
		d := s.Digest(node)
		if seen[d] {
			return
		}
		seen[d] = true
		entries = append(entries, digestedNode{node, d})
	})
	if err != nil {
		return nil, err
	}
	return newSetFromEntries(entries), nil
}

func (s *Snapshotter) freshMap(m Mapping) (Node, error) {
	if m.Ordered() {
		pairs := collectPairs(m)
		entries := make([]MapEntry, len(pairs))
		for i, p := range pairs {
			e, err := s.snapshotEntry(p.Key, p.Value)
			if err != nil {
				return nil, wrapf(err, "map entry %d", i)
			}
			entries[i] = e
		}
		return &Map{ordered: true, entries: entries}, nil
	}

	var err error
	keyed := make([]keyedEntry, 0, m.Len())
	seen := make(map[hashing.HashCode]bool, m.Len())
	m.Range(func(k, v interface{}) {
		if err != nil {
			return
		}
		e, entryErr := s.snapshotEntry(k, v)
		if entryErr != nil {
			err = wrapf(entryErr, "map entry")
			return
		}
		d := s.Digest(e.Key)
		if seen[d] {
			return
		}
		seen[d] = true
		keyed = append(keyed, keyedEntry{e, d})
	})
	if err != nil {
		return nil, err
	}
	return newUnorderedMap(keyed), nil
}

func (s *Snapshotter) snapshotEntry(k, v interface{}) (MapEntry, error) {
	key, err := s.Snapshot(k)
	if err != nil {
		return MapEntry{}, wrapf(err, "key")
	}
	value, err := s.Snapshot(v)
	if err != nil {
		return MapEntry{}, wrapf(err, "value for key %s", key)
	}
	return MapEntry{key, value}, nil
}

// digestOpaque asks the digester for value's digest. Every failure, including
// no digester accepting the type, is an *UnsnapshottableError.
func (s *Snapshotter) digestOpaque(value interface{}) (string, hashing.HashCode, error) {
	typeName := fmt.Sprintf("%T", value)
	digest, err := s.digester.DigestValue(value)
	if err == nil && len(digest) == 0 {
		err = fmt.Errorf("digester returned an empty digest")
	}
	if err != nil {
		s.unsnapCounter.Inc(1)
		log.Debugf("Cannot snapshot value of type %s: %v", typeName, err)
		return "", "", &UnsnapshottableError{Type: typeName, Err: err}
	}
	s.opaqueCounter.Inc(1)
	return typeName, hashing.HashCode(digest), nil
}
