package zkclient

import (
	"context"
	"time"

	"zkcli/internal/zpath"
)

// AnyVersion disables the optimistic version check on Set and Delete.
const AnyVersion int32 = -1

// Client is the capability set consumed by the traversal engine, the
// ephemeral lifecycle manager and the command dispatcher.
type Client interface {
	Children(ctx context.Context, p zpath.Path) ([]string, error)
	Get(ctx context.Context, p zpath.Path) ([]byte, Stat, error)
	Set(ctx context.Context, p zpath.Path, data []byte, expectedVersion int32) (Stat, error)
	Create(ctx context.Context, p zpath.Path, data []byte, mode CreateMode, acl []ACL) (zpath.Path, error)
	Delete(ctx context.Context, p zpath.Path, expectedVersion int32) error
	Exists(ctx context.Context, p zpath.Path) (bool, error)
	Stat(ctx context.Context, p zpath.Path) (Stat, error)
	Close()
}

// Stat mirrors the node metadata returned by the service.
type Stat struct {
	Version        int32
	CVersion       int32
	AVersion       int32
	DataLength     int32
	NumChildren    int32
	EphemeralOwner int64
	Czxid          int64
	Mzxid          int64
	Ctime          time.Time
	Mtime          time.Time
}

// Ephemeral reports whether the node is bound to a session.
func (s Stat) Ephemeral() bool {
	return s.EphemeralOwner != 0
}

// Persistence returns the persistence class of the node.
func (s Stat) Persistence() Persistence {
	if s.Ephemeral() {
		return Ephemeral
	}
	return Persistent
}
