package normalize

import (
	"time"
)

const (
	// apiTimeLayout is the only timestamp shape the API contract allows:
	// a UTC instant with a literal Z suffix and no fractional seconds.
	apiTimeLayout = "2006-01-02T15:04:05Z"

	// storageTimeLayout is the DATETIME form the store persists.
	storageTimeLayout = "2006-01-02 15:04:05"
)

// Timestamp converts a strict ISO 8601 UTC instant (YYYY-MM-DDTHH:MM:SSZ)
// into the storage DATETIME form (YYYY-MM-DD HH:MM:SS). This is a hard
// format contract: fractional seconds and non-UTC offsets are rejected
// with a FormatError, not coerced.
func Timestamp(s string) (string, error) {
	t, err := time.Parse(apiTimeLayout, s)
	if err != nil {
		return "", &FormatError{Field: "timestamp", Input: s, Msg: "not a UTC instant of the form YYYY-MM-DDTHH:MM:SSZ"}
	}
	// time.Parse tolerates fractional seconds even when the layout has
	// none; the round-trip check closes that hole.
	if t.Format(apiTimeLayout) != s {
		return "", &FormatError{Field: "timestamp", Input: s, Msg: "not a UTC instant of the form YYYY-MM-DDTHH:MM:SSZ"}
	}
	return t.Format(storageTimeLayout), nil
}
