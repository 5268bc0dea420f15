package zkerr

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidPath     = errors.New("invalid path")
	ErrNodeNotFound    = errors.New("node not found")
	ErrNodeExists      = errors.New("node already exists")
	ErrVersionConflict = errors.New("version conflict")
	ErrNotEmpty        = errors.New("node has children")
	ErrPayloadTooLarge = errors.New("payload too large")
	ErrConnect         = errors.New("connect error")
	ErrIO              = errors.New("io error")
	ErrTraversal       = errors.New("traversal failed")
)

// Wrap tags err with marker and attaches the operation and path that failed.
// The marker should be one of the exported sentinel errors above.
func Wrap(marker error, op, path string, err error) error {
	detail := buildDetail(op, path)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// TraversalError aborts a namespace walk. Output produced before the failure
// is not retracted.
type TraversalError struct {
	Path string
	Err  error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("%s at %s: %v", ErrTraversal, e.Path, e.Err)
}

func (e *TraversalError) Unwrap() []error {
	return []error{ErrTraversal, e.Err}
}

// Exit codes returned by the CLI once ephemeral cleanup has run.
const (
	ExitOK              = 0
	ExitUsage           = 1
	ExitInvalidPath     = 2
	ExitNodeNotFound    = 3
	ExitNodeExists      = 4
	ExitVersionConflict = 5
	ExitPayloadTooLarge = 6
	ExitConnect         = 7
	ExitIO              = 8
	ExitTraversal       = 9
	ExitNotEmpty        = 10
	ExitInterrupted     = 130
)

// ExitCode maps err onto the process exit status. An interrupt wins over
// everything; traversal failures take precedence over the class of their
// cause.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	for _, c := range classes {
		if errors.Is(err, c.marker) {
			return c.code
		}
	}
	return ExitUsage
}

// Kind returns a short label for the error class of err.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range classes {
		if errors.Is(err, c.marker) {
			return c.kind
		}
	}
	return "error"
}

type class struct {
	marker error
	code   int
	kind   string
}

var classes = []class{
	{context.Canceled, ExitInterrupted, "Interrupted"},
	{ErrTraversal, ExitTraversal, "TraversalFailed"},
	{ErrInvalidPath, ExitInvalidPath, "InvalidPath"},
	{ErrNodeNotFound, ExitNodeNotFound, "NodeNotFound"},
	{ErrNodeExists, ExitNodeExists, "NodeExists"},
	{ErrVersionConflict, ExitVersionConflict, "VersionConflict"},
	{ErrNotEmpty, ExitNotEmpty, "NotEmpty"},
	{ErrPayloadTooLarge, ExitPayloadTooLarge, "PayloadTooLarge"},
	{ErrConnect, ExitConnect, "ConnectError"},
	{ErrIO, ExitIO, "IOError"},
}

func buildDetail(op, path string) string {
	parts := make([]string, 0, 2)
	if op = strings.TrimSpace(op); op != "" {
		parts = append(parts, op)
	}
	if path = strings.TrimSpace(path); path != "" {
		parts = append(parts, path)
	}
	if len(parts) == 0 {
		return "operation failed"
	}
	return strings.Join(parts, " ")
}
