package testsupport

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"zkcli/internal/zkclient"
	"zkcli/internal/zkerr"
	"zkcli/internal/zpath"
)

// Hook runs before an operation touches the namespace. Returning an error
// fails the operation with it.
type Hook func(p zpath.Path) error

type node struct {
	data     []byte
	stat     zkclient.Stat
	children []string
	seq      int
}

// Namespace is an in-memory zkclient.Client. Children come back in reverse
// insertion order so callers cannot rely on service ordering.
type Namespace struct {
	mu      sync.Mutex
	nodes   map[string]*node
	hooks   map[string][]Hook
	calls   map[string]int
	acls    map[string][]zkclient.ACL
	session int64
	zxid    int64
	closed  bool
}

var _ zkclient.Client = (*Namespace)(nil)

// NewNamespace returns a namespace holding only the root and registers
// Close with the test.
func NewNamespace(t testing.TB) *Namespace {
	t.Helper()

	ns := &Namespace{
		nodes:   map[string]*node{"/": {}},
		hooks:   map[string][]Hook{},
		calls:   map[string]int{},
		acls:    map[string][]zkclient.ACL{},
		session: 0x1f00d,
	}
	t.Cleanup(ns.Close)
	return ns
}

// MustCreate creates p and any missing ancestors as persistent nodes.
func (n *Namespace) MustCreate(t testing.TB, raw string, data string) {
	t.Helper()

	p, err := zpath.Normalize(raw)
	if err != nil {
		t.Fatalf("normalize %q: %v", raw, err)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	current := zpath.Root()
	for i, segment := range p.Segments() {
		next, err := zpath.Join(current, segment)
		if err != nil {
			t.Fatalf("join %q: %v", segment, err)
		}
		if _, ok := n.nodes[next.String()]; !ok {
			payload := ""
			if i == p.Depth()-1 {
				payload = data
			}
			if _, err := n.createLocked(next, []byte(payload), zkclient.CreateMode{}); err != nil {
				t.Fatalf("create %s: %v", next, err)
			}
		}
		current = next
	}
}

// On registers fn to run before every op ("children", "get", "set",
// "create", "delete", "exists", "stat").
func (n *Namespace) On(op string, fn Hook) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.hooks[op] = append(n.hooks[op], fn)
}

// Calls returns how many times op was invoked.
func (n *Namespace) Calls(op string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[op]
}

// Has reports whether raw names a live node.
func (n *Namespace) Has(raw string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, ok := n.nodes[raw]
	return ok
}

// Data returns the payload stored at raw.
func (n *Namespace) Data(raw string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if nd, ok := n.nodes[raw]; ok {
		return string(nd.data)
	}
	return ""
}

// ACL returns the policy the node at raw was created with through Create.
func (n *Namespace) ACL(raw string) []zkclient.ACL {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.acls[raw])
}

// Ephemeral reports whether raw names a live ephemeral node.
func (n *Namespace) Ephemeral(raw string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	nd, ok := n.nodes[raw]
	return ok && nd.stat.EphemeralOwner != 0
}

// Remove deletes raw and its subtree without going through hooks, emulating
// another client mutating the namespace.
func (n *Namespace) Remove(raw string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	p, err := zpath.Normalize(raw)
	if err != nil {
		return
	}
	n.removeLocked(p)
}

// Close ends the session: the service expires every ephemeral node it owns.
func (n *Namespace) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	for key, nd := range n.nodes {
		if nd.stat.EphemeralOwner == n.session {
			if p, err := zpath.Normalize(key); err == nil {
				n.removeLocked(p)
			}
		}
	}
}

func (n *Namespace) Children(ctx context.Context, p zpath.Path) ([]string, error) {
	if err := n.enter(ctx, "children", p); err != nil {
		return nil, err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	nd, ok := n.nodes[p.String()]
	if !ok {
		return nil, zkerr.Wrap(zkerr.ErrNodeNotFound, "children", p.String(), nil)
	}
	out := slices.Clone(nd.children)
	slices.Reverse(out)
	return out, nil
}

func (n *Namespace) Get(ctx context.Context, p zpath.Path) ([]byte, zkclient.Stat, error) {
	if err := n.enter(ctx, "get", p); err != nil {
		return nil, zkclient.Stat{}, err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	nd, ok := n.nodes[p.String()]
	if !ok {
		return nil, zkclient.Stat{}, zkerr.Wrap(zkerr.ErrNodeNotFound, "get", p.String(), nil)
	}
	return slices.Clone(nd.data), n.statLocked(nd), nil
}

func (n *Namespace) Set(ctx context.Context, p zpath.Path, data []byte, expectedVersion int32) (zkclient.Stat, error) {
	if err := n.enter(ctx, "set", p); err != nil {
		return zkclient.Stat{}, err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	nd, ok := n.nodes[p.String()]
	if !ok {
		return zkclient.Stat{}, zkerr.Wrap(zkerr.ErrNodeNotFound, "set", p.String(), nil)
	}
	if expectedVersion != zkclient.AnyVersion && expectedVersion != nd.stat.Version {
		return zkclient.Stat{}, zkerr.Wrap(zkerr.ErrVersionConflict, "set", p.String(),
			fmt.Errorf("expected version %d, node is at %d", expectedVersion, nd.stat.Version))
	}
	nd.data = slices.Clone(data)
	nd.stat.Version++
	nd.stat.DataLength = int32(len(data))
	nd.stat.Mzxid = n.nextZxid()
	nd.stat.Mtime = time.Now().UTC()
	return n.statLocked(nd), nil
}

func (n *Namespace) Create(ctx context.Context, p zpath.Path, data []byte, mode zkclient.CreateMode, acl []zkclient.ACL) (zpath.Path, error) {
	if err := n.enter(ctx, "create", p); err != nil {
		return zpath.Path{}, err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	created, err := n.createLocked(p, data, mode)
	if err == nil {
		n.acls[created.String()] = slices.Clone(acl)
	}
	return created, err
}

func (n *Namespace) Delete(ctx context.Context, p zpath.Path, expectedVersion int32) error {
	if err := n.enter(ctx, "delete", p); err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	nd, ok := n.nodes[p.String()]
	if !ok {
		return zkerr.Wrap(zkerr.ErrNodeNotFound, "delete", p.String(), nil)
	}
	if expectedVersion != zkclient.AnyVersion && expectedVersion != nd.stat.Version {
		return zkerr.Wrap(zkerr.ErrVersionConflict, "delete", p.String(), nil)
	}
	if len(nd.children) > 0 {
		return zkerr.Wrap(zkerr.ErrNotEmpty, "delete", p.String(), nil)
	}
	n.removeLocked(p)
	return nil
}

func (n *Namespace) Exists(ctx context.Context, p zpath.Path) (bool, error) {
	if err := n.enter(ctx, "exists", p); err != nil {
		return false, err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	_, ok := n.nodes[p.String()]
	return ok, nil
}

func (n *Namespace) Stat(ctx context.Context, p zpath.Path) (zkclient.Stat, error) {
	if err := n.enter(ctx, "stat", p); err != nil {
		return zkclient.Stat{}, err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	nd, ok := n.nodes[p.String()]
	if !ok {
		return zkclient.Stat{}, zkerr.Wrap(zkerr.ErrNodeNotFound, "stat", p.String(), nil)
	}
	return n.statLocked(nd), nil
}

// enter counts the call and runs hooks outside the lock so they may mutate
// the namespace.
func (n *Namespace) enter(ctx context.Context, op string, p zpath.Path) error {
	n.mu.Lock()
	n.calls[op]++
	closed := n.closed
	hooks := slices.Clone(n.hooks[op])
	n.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s %s: %w", op, p, err)
	}
	if closed {
		return zkerr.Wrap(zkerr.ErrIO, op, p.String(), errors.New("session closed"))
	}
	for _, hook := range hooks {
		if err := hook(p); err != nil {
			return err
		}
	}
	return nil
}

func (n *Namespace) createLocked(p zpath.Path, data []byte, mode zkclient.CreateMode) (zpath.Path, error) {
	parentPath, ok := zpath.Parent(p)
	if !ok {
		return zpath.Path{}, zkerr.Wrap(zkerr.ErrNodeExists, "create", p.String(), nil)
	}
	parent, ok := n.nodes[parentPath.String()]
	if !ok {
		return zpath.Path{}, zkerr.Wrap(zkerr.ErrNodeNotFound, "create", p.String(), errors.New("parent does not exist"))
	}
	if parent.stat.EphemeralOwner != 0 {
		return zpath.Path{}, zkerr.Wrap(zkerr.ErrIO, "create", p.String(), errors.New("ephemerals cannot have children"))
	}
	target := p
	if mode.Sequential {
		var err error
		target, err = zpath.Join(parentPath, fmt.Sprintf("%s%010d", p.Base(), parent.seq))
		if err != nil {
			return zpath.Path{}, err
		}
		parent.seq++
	}
	key := target.String()
	if _, exists := n.nodes[key]; exists {
		return zpath.Path{}, zkerr.Wrap(zkerr.ErrNodeExists, "create", key, nil)
	}
	now := time.Now().UTC()
	zxid := n.nextZxid()
	nd := &node{
		data: slices.Clone(data),
		stat: zkclient.Stat{
			DataLength: int32(len(data)),
			Czxid:      zxid,
			Mzxid:      zxid,
			Ctime:      now,
			Mtime:      now,
		},
	}
	if mode.Persistence == zkclient.Ephemeral {
		nd.stat.EphemeralOwner = n.session
	}
	n.nodes[key] = nd
	parent.children = append(parent.children, target.Base())
	parent.stat.CVersion++
	return target, nil
}

func (n *Namespace) removeLocked(p zpath.Path) {
	key := p.String()
	nd, ok := n.nodes[key]
	if !ok {
		return
	}
	for _, child := range slices.Clone(nd.children) {
		if next, err := zpath.Join(p, child); err == nil {
			n.removeLocked(next)
		}
	}
	delete(n.nodes, key)
	delete(n.acls, key)
	if parentPath, ok := zpath.Parent(p); ok {
		if parent, ok := n.nodes[parentPath.String()]; ok {
			parent.children = slices.DeleteFunc(parent.children, func(name string) bool {
				return name == p.Base()
			})
			parent.stat.CVersion++
		}
	}
}

func (n *Namespace) statLocked(nd *node) zkclient.Stat {
	stat := nd.stat
	stat.NumChildren = int32(len(nd.children))
	return stat
}

func (n *Namespace) nextZxid() int64 {
	n.zxid++
	return n.zxid
}

// Paths lists every live node in sorted order.
func (n *Namespace) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.nodes))
	for key := range n.nodes {
		out = append(out, key)
	}
	slices.Sort(out)
	return out
}

// Dump renders Paths one per line, handy in failure messages.
func (n *Namespace) Dump() string {
	return strings.Join(n.Paths(), "\n")
}
