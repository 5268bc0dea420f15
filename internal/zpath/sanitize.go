package zpath

import (
	"fmt"
	"strings"
)

// Sanitize accepts the sloppier forms users type on the command line. A
// missing leading separator is added and a trailing one removed; every
// correction is returned as a human readable warning. An empty raw value
// resolves to the root.
func Sanitize(raw string) (Path, []string, error) {
	var warnings []string
	value := raw
	if value == "" {
		return Root(), nil, nil
	}
	if !strings.HasPrefix(value, Separator) {
		fixed := Separator + value
		warnings = append(warnings, fmt.Sprintf("adding a %q to the beginning of the path: %q => %q", Separator, value, fixed))
		value = fixed
	}
	if value != Separator && strings.HasSuffix(value, Separator) {
		fixed := strings.TrimRight(value, Separator)
		if fixed == "" {
			fixed = Separator
		}
		warnings = append(warnings, fmt.Sprintf("removing the %q at the end of the path: %q => %q", Separator, value, fixed))
		value = fixed
	}
	p, err := Normalize(value)
	if err != nil {
		return Path{}, warnings, err
	}
	return p, warnings, nil
}
