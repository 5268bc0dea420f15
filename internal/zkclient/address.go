package zkclient

import (
	"fmt"
	"strings"

	"zkcli/internal/zkerr"
	"zkcli/internal/zpath"
)

// DefaultAddress is used when neither a flag, the environment nor the config
// file names a server.
const DefaultAddress = "localhost:2181/"

// Address is a parsed connect string: a server list plus an optional chroot.
type Address struct {
	Servers []string
	Chroot  zpath.Path
}

// ParseAddress splits "host:port[,host:port...][/chroot]".
func ParseAddress(raw string) (Address, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultAddress
	}
	hosts, chroot := raw, ""
	if idx := strings.Index(raw, zpath.Separator); idx >= 0 {
		hosts, chroot = raw[:idx], raw[idx:]
	}
	var servers []string
	for _, host := range strings.Split(hosts, ",") {
		if host = strings.TrimSpace(host); host != "" {
			servers = append(servers, host)
		}
	}
	if len(servers) == 0 {
		return Address{}, zkerr.Wrap(zkerr.ErrConnect, "parse address", raw, fmt.Errorf("no servers listed"))
	}
	addr := Address{Servers: servers}
	if chroot != "" {
		p, err := zpath.Normalize(chroot)
		if err != nil {
			return Address{}, zkerr.Wrap(zkerr.ErrConnect, "parse address", raw, err)
		}
		addr.Chroot = p
	}
	return addr, nil
}

func (a Address) String() string {
	s := strings.Join(a.Servers, ",")
	if a.Chroot.IsRoot() {
		return s + zpath.Separator
	}
	return s + a.Chroot.String()
}

// resolve maps a client-visible path onto the server namespace.
func (a Address) resolve(p zpath.Path) string {
	if a.Chroot.IsRoot() {
		return p.String()
	}
	if p.IsRoot() {
		return a.Chroot.String()
	}
	return a.Chroot.String() + p.String()
}

// strip maps a server path back into the client-visible namespace.
func (a Address) strip(raw string) (zpath.Path, error) {
	if !a.Chroot.IsRoot() {
		prefix := a.Chroot.String()
		if trimmed, ok := strings.CutPrefix(raw, prefix); ok {
			raw = trimmed
		}
		if raw == "" {
			raw = zpath.Separator
		}
	}
	return zpath.Normalize(raw)
}
