// Package zkclient is the thin adapter between zkcli and a ZooKeeper
// ensemble.
//
// Client is the capability set every other package depends on: list
// children, read, write, create, delete, exists and stat. Session implements it
// on top of github.com/go-zookeeper/zk, resolving an optional chroot suffix in
// the connect string and translating library errors into the zkerr taxonomy.
// The adapter owns no business logic and never retries; tests substitute the
// in-memory namespace from internal/testsupport.
package zkclient
