// Package zpath models absolute ZooKeeper namespace paths.
//
// A Path is an immutable sequence of non-empty segments. Normalize is the only
// way to build one from user input and is idempotent: normalizing the string
// form of a normalized path yields an equal path. Sanitize layers the CLI's
// forgiving corrections (missing leading slash, trailing slash) on top and
// reports each correction so the caller can log it.
package zpath
