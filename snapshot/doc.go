/*
package snapshot converts runtime values into immutable snapshot trees that can
be hashed into build cache keys, and re-snapshots changed values cheaply by
deriving from the previous tree.

The main entry point is the Snapshotter. A Snapshotter classifies a raw value
by its Shape and builds a Node: Null, Scalar, List, Set, Map or Opaque. Given
the Node produced for the same logical value by a previous build,
SnapshotFrom derives the new Node from it, reusing every child whose content
did not change. When nothing changed the previous Node itself is returned, so
callers can compare Nodes with == to detect "no change" in constant time.

Nodes never change after construction and may be shared freely between
goroutines. A Node is written into a hashing.Hasher with AppendTo; every
variant writes a discriminator token and, for composites, its element count
before its children.

Values that are not null, scalars, sequences, collections or mappings are
handed to an OpaqueDigester. If no digester can produce a stable digest the
value is rejected with an *UnsnapshottableError; there are no placeholder
snapshots.
*/
package snapshot
