// Package fingerprint computes build cache keys for tasks from their declared
// inputs.
//
// Each input is snapshotted against the node the same input produced in the
// previous build, so unchanged inputs cost a walk of the value and reuse the
// previous tree. The key is a digest over every input in declared order, and
// the new nodes are saved to a history Store for the next build.
package fingerprint
