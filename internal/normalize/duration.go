// Package normalize converts API-native representations (ISO-8601 durations
// and timestamps) into the scalar forms the store persists.
package normalize

import (
	"strconv"
	"strings"
)

// durationUnits, in the order ISO 8601 requires them to appear.
var durationUnits = []struct {
	letter byte
	mult   int64
}{
	{'H', 3600},
	{'M', 60},
	{'S', 1},
}

// DurationSeconds converts an ISO 8601 duration of the form PT[nH][nM][nS]
// into total whole seconds. A nil input yields a nil result (stored as NULL).
// "PT" with no components is zero duration. The PT marker is validated
// explicitly; anything that is not the exact grammar is a FormatError.
func DurationSeconds(iso *string) (*int64, error) {
	if iso == nil {
		return nil, nil
	}
	s := *iso
	rest, ok := strings.CutPrefix(s, "PT")
	if !ok {
		return nil, &FormatError{Field: "duration", Input: s, Msg: "missing PT marker"}
	}

	var total int64
	for _, unit := range durationUnits {
		i := strings.IndexByte(rest, unit.letter)
		if i < 0 {
			continue
		}
		n, err := strconv.ParseInt(rest[:i], 10, 64)
		if err != nil || n < 0 {
			return nil, &FormatError{Field: "duration", Input: s, Msg: "invalid " + string(unit.letter) + " component"}
		}
		total += n * unit.mult
		rest = rest[i+1:]
	}
	if rest != "" {
		return nil, &FormatError{Field: "duration", Input: s, Msg: "unexpected trailing input"}
	}
	return &total, nil
}
