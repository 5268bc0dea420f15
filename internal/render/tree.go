package render

import (
	"strings"

	"zkcli/internal/traverse"
)

const (
	branchMid  = "├── "
	branchLast = "└── "
	pipeMid    = "│   "
	pipeLast   = "    "
)

// TreePrefix returns the connector glyphs for an entry whose ancestry is
// described by last: one column per ancestor below the root, then the
// entry's own branch.
func TreePrefix(last []bool) string {
	if len(last) == 0 {
		return ""
	}
	var b strings.Builder
	for _, ancestorLast := range last[:len(last)-1] {
		if ancestorLast {
			b.WriteString(pipeLast)
		} else {
			b.WriteString(pipeMid)
		}
	}
	if last[len(last)-1] {
		b.WriteString(branchLast)
	} else {
		b.WriteString(branchMid)
	}
	return b.String()
}

// TreeLine renders one traversal entry. The root of the walk shows its full
// path; descendants show their base name under the connectors.
func TreeLine(entry traverse.Entry, color bool) string {
	if entry.Depth == 0 {
		return NodeName(entry.Path.String(), entry.Stat, color)
	}
	return TreePrefix(entry.Last) + NodeName(entry.Path.Base(), entry.Stat, color)
}
