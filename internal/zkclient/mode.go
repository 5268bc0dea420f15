package zkclient

import (
	"errors"
	"fmt"
	"strings"
)

// Persistence is the lifetime class of a node.
type Persistence int

const (
	Persistent Persistence = iota
	Ephemeral
)

func (p Persistence) String() string {
	if p == Ephemeral {
		return "ephemeral"
	}
	return "persistent"
}

// CreateMode selects the persistence class and whether the service appends a
// monotonically increasing suffix to the node name.
type CreateMode struct {
	Persistence Persistence
	Sequential  bool
}

func (m CreateMode) String() string {
	if m.Sequential {
		return m.Persistence.String() + "-sequential"
	}
	return m.Persistence.String()
}

// Mode names accepted by ParseModes.
const (
	ModePersistent = "persistent"
	ModeEphemeral  = "ephemeral"
	ModeSequential = "sequential"
)

// ParseModes combines repeated --mode values. Persistent and ephemeral are
// mutually exclusive; sequential combines with either. No values means
// persistent.
func ParseModes(values []string) (CreateMode, error) {
	var persistent, ephemeral, sequential bool
	for _, raw := range values {
		for _, value := range strings.Split(raw, ",") {
			switch strings.ToLower(strings.TrimSpace(value)) {
			case ModePersistent:
				persistent = true
			case ModeEphemeral:
				ephemeral = true
			case ModeSequential:
				sequential = true
			case "":
			default:
				return CreateMode{}, fmt.Errorf("unknown create mode %q (want %s, %s or %s)", value, ModePersistent, ModeEphemeral, ModeSequential)
			}
		}
	}
	if persistent && ephemeral {
		return CreateMode{}, errors.New("can't use persistent and ephemeral at the same time")
	}
	mode := CreateMode{Persistence: Persistent, Sequential: sequential}
	if ephemeral {
		mode.Persistence = Ephemeral
	}
	return mode, nil
}
