// Package ephemeral guarantees that ephemeral nodes created by this process
// are deleted before it exits.
//
// Commands Register every ephemeral node right after creating it. Scope wraps
// the command body so CleanupAll runs exactly once whether the body returns,
// fails, panics or is interrupted by a signal cancelling its context. Cleanup
// walks the registrations newest first and deletes each node; a failed delete
// marks that registration Abandoned and moves on. There are no retries: the
// service expires a session's ephemeral nodes on its own once the session
// closes.
package ephemeral
