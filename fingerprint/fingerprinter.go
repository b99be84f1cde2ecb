package fingerprint

import (
	"sort"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	remoteexecution "google.golang.org/genproto/googleapis/devtools/remoteexecution/v1test"

	"github.com/Anima18/gradle/common"
	"github.com/Anima18/gradle/common/stats"
	"github.com/Anima18/gradle/hashing"
	"github.com/Anima18/gradle/snapshot"
)

// Result is the outcome of fingerprinting one task.
type Result struct {
	TaskID  string
	BuildID string

	// Key is the cache key and Digest its remote execution form.
	Key    hashing.HashCode
	Digest *remoteexecution.Digest

	// UpToDate is set when Key equals the key of the previous build.
	UpToDate bool

	// Changed names the inputs whose snapshot is not the previous build's
	// node, in declared order. Inputs seen for the first time are included.
	Changed []string

	// Removed names inputs of the previous build that are no longer declared,
	// sorted.
	Removed []string

	// Snapshots holds every input's node in declared order.
	Snapshots []NamedNode
}

// Fingerprinter computes task cache keys against a history Store.
// Fingerprints of different tasks may run concurrently; fingerprints of the
// same task must be serialized by the caller.
type Fingerprinter struct {
	snapshotter *snapshot.Snapshotter
	store       Store
	stat        stats.StatsReceiver
}

// NewFingerprinter creates a Fingerprinter. A nil store fingerprints every
// task from scratch and keeps nothing.
func NewFingerprinter(snapshotter *snapshot.Snapshotter, store Store, stat stats.StatsReceiver) *Fingerprinter {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	if snapshotter == nil {
		snapshotter = snapshot.NewSnapshotter(nil, nil, stat)
	}
	return &Fingerprinter{snapshotter: snapshotter, store: store, stat: stat.Scope("fingerprint")}
}

// Fingerprint snapshots inputs, computes the task's key and saves the new
// snapshots. Any input that cannot be snapshotted fails the whole task and
// nothing is saved.
func (f *Fingerprinter) Fingerprint(taskID string, inputs []Input) (*Result, error) {
	defer f.stat.Latency(stats.FingerprintLatency_ms).Time().Stop()

	result, err := f.fingerprint(taskID, inputs)
	if err != nil {
		f.stat.Counter(stats.FingerprintFailedCounter).Inc(1)
		log.Errorf("Fingerprint of task %s failed: %v", taskID, err)
		return nil, err
	}
	f.stat.Counter(stats.FingerprintComputedCounter).Inc(1)
	return result, nil
}

func (f *Fingerprinter) fingerprint(taskID string, inputs []Input) (*Result, error) {
	if err := validateInputs(inputs); err != nil {
		return nil, errors.Wrapf(err, "task %s", taskID)
	}

	var previous *Entry
	if f.store != nil {
		var err error
		if previous, err = f.store.Load(taskID); err != nil {
			return nil, errors.Wrapf(err, "loading history of task %s", taskID)
		}
	}

	result := &Result{TaskID: taskID, Snapshots: make([]NamedNode, len(inputs))}
	current := make(map[string]snapshot.Node, len(inputs))
	for i, in := range inputs {
		var prev snapshot.Node
		if previous != nil {
			prev = previous.Inputs[in.Name]
		}
		node, err := f.snapshotter.SnapshotFrom(in.Value, prev)
		if err != nil {
			return nil, errors.Wrapf(err, "input %q of task %s", in.Name, taskID)
		}
		if prev == nil {
			f.stat.Counter(stats.FingerprintNewInputsCounter).Inc(1)
		}
		if node != prev {
			f.stat.Counter(stats.FingerprintChangedInputsCounter).Inc(1)
			result.Changed = append(result.Changed, in.Name)
		}
		result.Snapshots[i] = NamedNode{in.Name, node}
		current[in.Name] = node
	}
	if previous != nil {
		for name := range previous.Inputs {
			if _, ok := current[name]; !ok {
				result.Removed = append(result.Removed, name)
			}
		}
		sort.Strings(result.Removed)
	}

	key, size := Key(f.snapshotter.Hashers(), result.Snapshots)
	result.Key = key
	result.Digest = hashing.ToDigest(key, size)
	result.UpToDate = previous != nil && previous.Key == key
	result.BuildID = common.GenUUID()
	log.Debugf("Task %s: key %s, %d of %d inputs changed", taskID, hashing.DigestToStr(result.Digest), len(result.Changed), len(inputs))

	if f.store != nil {
		entry := &Entry{BuildID: result.BuildID, Key: key, Inputs: current, Saved: stats.Time.Now()}
		if err := f.store.Save(taskID, entry); err != nil {
			return nil, errors.Wrapf(err, "saving history of task %s", taskID)
		}
	}
	return result, nil
}
