package zpath

import (
	"fmt"
	"strings"

	"zkcli/internal/zkerr"
)

// Separator delimits path segments and marks the namespace root.
const Separator = "/"

// Path is an absolute, normalized namespace path. The zero value is the root.
type Path struct {
	segments []string
}

// Root returns the namespace root.
func Root() Path {
	return Path{}
}

// Normalize parses raw into a Path. Repeated separators collapse; input that
// is empty or relative fails with zkerr.ErrInvalidPath.
func Normalize(raw string) (Path, error) {
	if raw == "" {
		return Path{}, zkerr.Wrap(zkerr.ErrInvalidPath, "normalize", `""`, nil)
	}
	if !strings.HasPrefix(raw, Separator) {
		return Path{}, zkerr.Wrap(zkerr.ErrInvalidPath, "normalize", raw, fmt.Errorf("path must start with %q", Separator))
	}
	var segments []string
	for _, segment := range strings.Split(raw, Separator) {
		if segment == "" {
			continue
		}
		segments = append(segments, segment)
	}
	return Path{segments: segments}, nil
}

// MustNormalize is Normalize for literals known to be valid.
func MustNormalize(raw string) Path {
	p, err := Normalize(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// Join appends segment to parent.
func Join(parent Path, segment string) (Path, error) {
	if segment == "" {
		return Path{}, zkerr.Wrap(zkerr.ErrInvalidPath, "join", parent.String(), fmt.Errorf("empty segment"))
	}
	if strings.Contains(segment, Separator) {
		return Path{}, zkerr.Wrap(zkerr.ErrInvalidPath, "join", parent.String(), fmt.Errorf("segment %q contains %q", segment, Separator))
	}
	segments := make([]string, len(parent.segments)+1)
	copy(segments, parent.segments)
	segments[len(parent.segments)] = segment
	return Path{segments: segments}, nil
}

// Parent returns the enclosing path, or false for the root.
func Parent(p Path) (Path, bool) {
	if p.IsRoot() {
		return Path{}, false
	}
	return Path{segments: p.segments[:len(p.segments)-1:len(p.segments)-1]}, true
}

// IsRoot reports whether p addresses the namespace root.
func (p Path) IsRoot() bool {
	return len(p.segments) == 0
}

// Depth is the number of segments below the root.
func (p Path) Depth() int {
	return len(p.segments)
}

// Base returns the last segment, or "/" for the root.
func (p Path) Base() string {
	if p.IsRoot() {
		return Separator
	}
	return p.segments[len(p.segments)-1]
}

// Segments returns a copy of the segment sequence.
func (p Path) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

// Equal reports whether both paths have the same segment sequence.
func (p Path) Equal(other Path) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i := range p.segments {
		if p.segments[i] != other.segments[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether p equals prefix or lives below it.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix.segments) > len(p.segments) {
		return false
	}
	for i := range prefix.segments {
		if p.segments[i] != prefix.segments[i] {
			return false
		}
	}
	return true
}

func (p Path) String() string {
	if p.IsRoot() {
		return Separator
	}
	return Separator + strings.Join(p.segments, Separator)
}
