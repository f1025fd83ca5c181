package core

import (
	"fmt"
)

// DegenerateTrainingDataError indicates the train split cannot support
// two-class estimation: it is empty or contains a single class. Fatal
// to the fitting stage, never silently recovered.
type DegenerateTrainingDataError struct {
	Examples int
	Classes  int
}

func (e *DegenerateTrainingDataError) Error() string {
	return fmt.Sprintf("degenerate training data: %d examples, %d classes (need both ham and spam)", e.Examples, e.Classes)
}

// SchemaMismatchError indicates a persisted artifact is absent,
// corrupted, or incompatible with the feature space the model expects.
// Fatal for the scoring batch that loaded it.
type SchemaMismatchError struct {
	Reason string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("model artifact schema mismatch: %s", e.Reason)
}

// InvalidInputError indicates a malformed message record. Per-record:
// the record is skipped with a warning, the batch continues.
type InvalidInputError struct {
	Line   int
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid input record at line %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("invalid input record: %s", e.Reason)
}
