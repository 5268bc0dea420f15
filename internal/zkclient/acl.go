package zkclient

import (
	"fmt"
	"strings"
)

// Permission bits understood by the service.
const (
	PermRead int32 = 1 << iota
	PermWrite
	PermCreate
	PermDelete
	PermAdmin
	PermAll = PermRead | PermWrite | PermCreate | PermDelete | PermAdmin
)

// ACL is a single access control entry passed to Create.
type ACL struct {
	Perms  int32
	Scheme string
	ID     string
}

// OpenACL is the "anyone can do anything" policy.
func OpenACL() []ACL {
	return []ACL{{Perms: PermAll, Scheme: "world", ID: "anyone"}}
}

// ParsePerms accepts "all" or any combination of the letters r, w, c, d and a.
func ParsePerms(value string) (int32, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" || value == "all" {
		return PermAll, nil
	}
	var perms int32
	for _, r := range value {
		switch r {
		case 'r':
			perms |= PermRead
		case 'w':
			perms |= PermWrite
		case 'c':
			perms |= PermCreate
		case 'd':
			perms |= PermDelete
		case 'a':
			perms |= PermAdmin
		default:
			return 0, fmt.Errorf("unknown permission %q in %q", r, value)
		}
	}
	return perms, nil
}

// FormatPerms renders perms in the compact letter form used by ParsePerms.
func FormatPerms(perms int32) string {
	var b strings.Builder
	for _, p := range []struct {
		bit    int32
		letter byte
	}{{PermRead, 'r'}, {PermWrite, 'w'}, {PermCreate, 'c'}, {PermDelete, 'd'}, {PermAdmin, 'a'}} {
		if perms&p.bit != 0 {
			b.WriteByte(p.letter)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
