// Package traverse walks a ZooKeeper namespace subtree depth first.
//
// Walker is a pull iterator: each Next call performs at most the remote calls
// needed to produce one more entry, so a depth-bounded listing never touches
// nodes it will not print and wide namespaces are never materialized in
// memory. Children are sorted before descent to make output reproducible.
//
// The namespace is mutable while it is walked. A node that vanishes between
// being listed and being visited is skipped; only a missing root is an error.
// Any other adapter failure ends the walk with a *zkerr.TraversalError and
// entries already produced stay produced. A Walker is single use.
package traverse
