// Package zkerr defines the error taxonomy shared by every zkcli component.
//
// Errors are tagged with sentinel markers (ErrInvalidPath, ErrNodeNotFound,
// ErrVersionConflict, ...) and wrapped with %w so callers classify failures
// through errors.Is instead of string matching. TraversalError records the
// namespace path a walk failed at while still matching ErrTraversal and the
// underlying cause.
//
// ExitCode and Kind translate a classified error into the process exit status
// and the short label printed in the single diagnostic line emitted by the
// CLI.
package zkerr
