package fingerprint

import (
	"fmt"
	"sync"
	"testing"

	"github.com/Anima18/gradle/common/stats"
	"github.com/Anima18/gradle/hashing"
	"github.com/Anima18/gradle/snapshot"
)

type unsnapshottable struct{}

func compileInputs(srcs []string, opt int) []Input {
	return []Input{
		{"srcs", srcs},
		{"options", snapshot.Pairs{{Key: "opt", Value: opt}, {Key: "debug", Value: false}}},
		{"classpath", snapshot.Unordered{"a.jar", "b.jar"}},
	}
}

func TestFirstBuildAllInputsChanged(t *testing.T) {
	f := NewFingerprinter(nil, NewMemoryStore(nil), nil)
	res, err := f.Fingerprint("compile", compileInputs([]string{"A.java"}, 1))
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if len(res.Changed) != 3 || res.UpToDate {
		t.Fatalf("Expected every input to be new, got %+v", res)
	}
	if !hashing.IsValidDigest(res.Digest.GetHash(), res.Digest.GetSizeBytes()) {
		t.Fatalf("Invalid digest %v", res.Digest)
	}
	if len(res.BuildID) != 36 {
		t.Fatalf("Expected a uuid build id, got %q", res.BuildID)
	}
}

func TestUnchangedInputsReuseSnapshots(t *testing.T) {
	store := NewMemoryStore(nil)
	f := NewFingerprinter(nil, store, nil)
	first, err := f.Fingerprint("compile", compileInputs([]string{"A.java"}, 1))
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	second, err := f.Fingerprint("compile", compileInputs([]string{"A.java"}, 1))
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}

	if !second.UpToDate || second.Key != first.Key || len(second.Changed) != 0 {
		t.Fatalf("Expected an up to date task, got %+v", second)
	}
	for i := range first.Snapshots {
		if first.Snapshots[i].Node != second.Snapshots[i].Node {
			t.Fatalf("Input %s was rebuilt", first.Snapshots[i].Name)
		}
	}
	if first.BuildID == second.BuildID {
		t.Fatalf("Every fingerprint gets its own build id")
	}
}

func TestChangedInputIsReported(t *testing.T) {
	f := NewFingerprinter(nil, NewMemoryStore(nil), nil)
	first, _ := f.Fingerprint("compile", compileInputs([]string{"A.java"}, 1))
	second, err := f.Fingerprint("compile", compileInputs([]string{"A.java"}, 2))
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if second.UpToDate || second.Key == first.Key {
		t.Fatalf("A changed option must change the key")
	}
	if len(second.Changed) != 1 || second.Changed[0] != "options" {
		t.Fatalf("Expected only options to change, got %v", second.Changed)
	}
}

func TestKeyFollowsDeclaredOrder(t *testing.T) {
	f := NewFingerprinter(nil, nil, nil)
	a, _ := f.Fingerprint("t", []Input{{"x", 1}, {"y", 2}})
	b, _ := f.Fingerprint("t", []Input{{"y", 2}, {"x", 1}})
	if a.Key == b.Key {
		t.Fatalf("Reordering declared inputs should change the key")
	}
	c, _ := f.Fingerprint("t", []Input{{"x", 2}, {"y", 1}})
	if a.Key == c.Key {
		t.Fatalf("Swapping values between inputs should change the key")
	}
}

func TestRemovedInputs(t *testing.T) {
	f := NewFingerprinter(nil, NewMemoryStore(nil), nil)
	f.Fingerprint("t", []Input{{"x", 1}, {"y", 2}, {"z", 3}})
	res, err := f.Fingerprint("t", []Input{{"y", 2}})
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if len(res.Removed) != 2 || res.Removed[0] != "x" || res.Removed[1] != "z" {
		t.Fatalf("Expected x and z removed, got %v", res.Removed)
	}
	if len(res.Changed) != 0 {
		t.Fatalf("y did not change, got %v", res.Changed)
	}
}

func TestInvalidInputs(t *testing.T) {
	f := NewFingerprinter(nil, nil, nil)
	if _, err := f.Fingerprint("t", []Input{{"", 1}}); err == nil {
		t.Fatalf("Expected an error for an unnamed input")
	}
	if _, err := f.Fingerprint("t", []Input{{"x", 1}, {"x", 2}}); err == nil {
		t.Fatalf("Expected an error for a duplicate input")
	}
}

func TestUnsnapshottableInputSavesNothing(t *testing.T) {
	store := NewMemoryStore(nil)
	f := NewFingerprinter(nil, store, nil)
	_, err := f.Fingerprint("t", []Input{{"ok", 1}, {"bad", unsnapshottable{}}})
	if !snapshot.IsUnsnapshottable(err) {
		t.Fatalf("Expected an unsnapshottable error, got %v", err)
	}
	if entry, _ := store.Load("t"); entry != nil {
		t.Fatalf("A failed fingerprint must not be saved, got %+v", entry)
	}
}

func TestFingerprintStats(t *testing.T) {
	stat := stats.DefaultStatsReceiver()
	f := NewFingerprinter(nil, NewMemoryStore(stat), stat)
	f.Fingerprint("t", []Input{{"x", 1}, {"y", 2}})
	f.Fingerprint("t", []Input{{"x", 1}, {"y", 3}})
	f.Fingerprint("t", []Input{{"x", unsnapshottable{}}})

	stats.VerifyCounts("fingerprint", stat, t, map[string]int64{
		"fingerprint/" + stats.FingerprintComputedCounter:      2,
		"fingerprint/" + stats.FingerprintFailedCounter:        1,
		"fingerprint/" + stats.FingerprintNewInputsCounter:     2,
		"fingerprint/" + stats.FingerprintChangedInputsCounter: 3,
		stats.HistoryTasksGauge:                                1,
	})
}

func TestConcurrentTasks(t *testing.T) {
	store := NewMemoryStore(nil)
	f := NewFingerprinter(nil, store, nil)
	shared, err := snapshot.NewSnapshotter(nil, nil, nil).Snapshot([]string{"shared"})
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			task := fmt.Sprintf("task-%d", i)
			for round := 0; round < 3; round++ {
				res, err := f.Fingerprint(task, []Input{{"n", i}, {"srcs", []string{"shared"}}})
				if err != nil {
					errs <- err
					return
				}
				if round > 0 && !res.UpToDate {
					errs <- fmt.Errorf("%s round %d was not up to date", task, round)
					return
				}
				if !snapshot.Equal(res.Snapshots[1].Node, shared) {
					errs <- fmt.Errorf("%s got %s", task, res.Snapshots[1].Node)
					return
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
	if len(store.Tasks()) != 16 {
		t.Fatalf("Expected 16 tasks in history, got %v", store.Tasks())
	}
}
