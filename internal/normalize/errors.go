package normalize

import (
	"fmt"
)

// FormatError reports a source value that does not match the fixed grammar
// the normalizer accepts. It is non-fatal to an ingestion stage: the
// orchestrator skips the offending entity and continues.
type FormatError struct {
	Field string // "duration" or "timestamp"
	Input string
	Msg   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed %s %q: %s", e.Field, e.Input, e.Msg)
}
