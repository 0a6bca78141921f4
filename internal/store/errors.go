package store

import (
	"fmt"
)

// ConstraintKind distinguishes the two constraint violations the schema
// can produce on insert.
type ConstraintKind string

const (
	ConstraintDuplicate  ConstraintKind = "duplicate_key"
	ConstraintForeignKey ConstraintKind = "foreign_key"
)

// ConstraintError reports a single-row insert rejected by the database,
// identifying the entity and key so per-row failures can be logged and
// counted without aborting a surrounding ingestion stage.
type ConstraintError struct {
	Entity Entity
	Key    string
	Kind   ConstraintKind
	Err    error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s constraint violated inserting %s %q: %v", e.Kind, e.Entity, e.Key, e.Err)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}
