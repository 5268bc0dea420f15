package traverse

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"slices"

	"zkcli/internal/logging"
	"zkcli/internal/zkclient"
	"zkcli/internal/zkerr"
	"zkcli/internal/zpath"
)

// Unbounded disables the depth limit.
const Unbounded = -1

// Lister is the subset of zkclient.Client the walker needs.
type Lister interface {
	Children(ctx context.Context, p zpath.Path) ([]string, error)
	Stat(ctx context.Context, p zpath.Path) (zkclient.Stat, error)
}

// Options tune a walk.
type Options struct {
	// MaxDepth bounds recursion in segments below the root. Zero yields only
	// the root; Unbounded (or any negative value) walks the whole subtree.
	MaxDepth int
	Logger   *slog.Logger
}

// Entry is one visited node.
type Entry struct {
	Path  zpath.Path
	Depth int
	Stat  zkclient.Stat
	// Last[i] reports whether the node on this entry's ancestry at depth i+1
	// is the last sibling at its level; the final element describes the entry
	// itself. Empty for the root.
	Last []bool
}

// IsLast reports whether the entry is the last of its siblings.
func (e Entry) IsLast() bool {
	return len(e.Last) > 0 && e.Last[len(e.Last)-1]
}

type frame struct {
	parent Entry
	names  []string
	next   int
}

// Walker produces entries in lexicographic pre-order.
type Walker struct {
	ctx    context.Context
	lister Lister
	root   zpath.Path
	max    int
	logger *slog.Logger

	started bool
	done    bool
	stack   []frame
	expand  *Entry
	current Entry
	err     error
}

// New prepares a walk rooted at root. No remote call happens until Next.
func New(ctx context.Context, lister Lister, root zpath.Path, opts Options) *Walker {
	maxDepth := opts.MaxDepth
	if maxDepth < 0 {
		maxDepth = Unbounded
	}
	return &Walker{
		ctx:    ctx,
		lister: lister,
		root:   root,
		max:    maxDepth,
		logger: logging.NewComponentLogger(opts.Logger, "traverse"),
	}
}

// Next advances to the next entry. It returns false once the subtree is
// exhausted or the walk failed; Err distinguishes the two.
func (w *Walker) Next() bool {
	if w.done {
		return false
	}
	if !w.started {
		w.started = true
		return w.visitRoot()
	}
	if w.expand != nil {
		parent := *w.expand
		w.expand = nil
		if err := w.push(parent); err != nil {
			return w.fail(parent.Path, err)
		}
	}
	for len(w.stack) > 0 {
		top := &w.stack[len(w.stack)-1]
		if top.next >= len(top.names) {
			w.stack = w.stack[:len(w.stack)-1]
			continue
		}
		name := top.names[top.next]
		top.next++
		last := top.next == len(top.names)
		parent := top.parent

		child, err := zpath.Join(parent.Path, name)
		if err != nil {
			return w.fail(parent.Path, err)
		}
		stat, err := w.lister.Stat(w.ctx, child)
		if err != nil {
			if errors.Is(err, zkerr.ErrNodeNotFound) {
				w.logger.Debug("node vanished during traversal", logging.String("path", child.String()))
				continue
			}
			return w.fail(child, err)
		}
		w.current = Entry{
			Path:  child,
			Depth: parent.Depth + 1,
			Stat:  stat,
			Last:  appendFlag(parent.Last, last),
		}
		w.scheduleExpand()
		return true
	}
	w.done = true
	return false
}

// Entry returns the entry produced by the last successful Next.
func (w *Walker) Entry() Entry {
	return w.current
}

// Err returns the failure that ended the walk, if any.
func (w *Walker) Err() error {
	return w.err
}

// All adapts the walker to a range-over-func sequence. Breaking out of the
// loop leaves the walker positioned after the last yielded entry.
func (w *Walker) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for w.Next() {
			if !yield(w.current) {
				return
			}
		}
	}
}

func (w *Walker) visitRoot() bool {
	stat, err := w.lister.Stat(w.ctx, w.root)
	if err != nil {
		return w.fail(w.root, err)
	}
	w.current = Entry{Path: w.root, Depth: 0, Stat: stat}
	w.scheduleExpand()
	return true
}

func (w *Walker) scheduleExpand() {
	if w.max != Unbounded && w.current.Depth >= w.max {
		return
	}
	if w.current.Stat.NumChildren == 0 {
		return
	}
	entry := w.current
	w.expand = &entry
}

// push lists the children of parent. A parent deleted since it was visited
// simply has no children; at the root it is an error.
func (w *Walker) push(parent Entry) error {
	names, err := w.lister.Children(w.ctx, parent.Path)
	if err != nil {
		if errors.Is(err, zkerr.ErrNodeNotFound) && parent.Depth > 0 {
			w.logger.Debug("node vanished before listing", logging.String("path", parent.Path.String()))
			return nil
		}
		return err
	}
	if len(names) == 0 {
		return nil
	}
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	w.stack = append(w.stack, frame{parent: parent, names: sorted})
	return nil
}

// fail ends the walk. A missing root surfaces as the plain NodeNotFound
// error; everything else is wrapped in a TraversalError.
func (w *Walker) fail(p zpath.Path, err error) bool {
	w.done = true
	w.stack = nil
	w.expand = nil
	if p.Equal(w.root) && errors.Is(err, zkerr.ErrNodeNotFound) {
		w.err = err
		return false
	}
	w.err = &zkerr.TraversalError{Path: p.String(), Err: err}
	return false
}

func appendFlag(flags []bool, last bool) []bool {
	out := make([]bool, len(flags)+1)
	copy(out, flags)
	out[len(flags)] = last
	return out
}
