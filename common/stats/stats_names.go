package stats

/*
This file defines all the metrics being collected. As new metrics are added please follow this pattern.
*/

const (
	/************************* Snapshotter metrics **************************/
	/*
		the number of snapshot trees built from scratch (includes nested nodes)
	*/
	SnapshotterFreshCounter = "freshSnapshots"

	/*
		the number of derivations attempted against a previous node
	*/
	SnapshotterDeriveCounter = "derivations"

	/*
		the number of derivations that returned the previous node unchanged
	*/
	SnapshotterDeriveReusedCounter = "derivationsReused"

	/*
		the number of derivations abandoned because the value changed shape
	*/
	SnapshotterShapeChangeCounter = "shapeChanges"

	/*
		the number of opaque values digested by the opaque digester
	*/
	SnapshotterOpaqueDigestCounter = "opaqueDigests"

	/*
		the number of values that could not be snapshotted
	*/
	SnapshotterUnsnapshottableCounter = "unsnapshottable"

	/************************* Fingerprinter metrics **************************/
	/*
		the number of task fingerprints computed
	*/
	FingerprintComputedCounter = "computed"

	/*
		the number of fingerprints that failed
	*/
	FingerprintFailedCounter = "failed"

	/*
		the number of inputs whose snapshot changed since the previous build
	*/
	FingerprintChangedInputsCounter = "changedInputs"

	/*
		the number of inputs snapshotted with no previous build to derive from
	*/
	FingerprintNewInputsCounter = "newInputs"

	/*
		time to snapshot and hash all inputs of one task
	*/
	FingerprintLatency_ms = "fingerprintLatency_ms"

	/*
		the number of tasks held by the snapshot history store
	*/
	HistoryTasksGauge = "historyTasks"
)
