package workout

import (
	"errors"
	"fmt"
)

var (
	ErrTemplateNotFound  = errors.New("workout template not found")
	ErrSnapshotNotFound  = errors.New("autosave snapshot not found")
	// ErrSnapshotCorrupted is returned by autosave stores when a stored snapshot cannot be decoded.
	ErrSnapshotCorrupted = errors.New("autosave snapshot corrupted")
)

// ValidationError is a field level input error. Session state is unchanged when returned.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Validate checks the set form values: reps are required, RPE must be within 1..10.
func (v SetValues) Validate() error {
	if ParseMeasurement(v.Reps).IsNotApplicable() {
		return NewValidationError("reps", "reps are required")
	}
	if v.RPE != nil && (*v.RPE < 1 || *v.RPE > 10) {
		return NewValidationError("rpe", "rpe must be between 1 and 10")
	}
	return nil
}

// ToRecordedSet converts validated form values, an empty weight is stored as N/A.
func (v SetValues) ToRecordedSet(setNumber int) RecordedSet {
	var rpe *int
	if v.RPE != nil {
		r := *v.RPE
		rpe = &r
	}
	return RecordedSet{
		SetNumber: setNumber,
		Weight:    ParseMeasurement(v.Weight),
		Reps:      ParseMeasurement(v.Reps),
		RPE:       rpe,
		Notes:     v.Notes,
	}
}

func (s RecordedSet) Values() SetValues {
	var rpe *int
	if s.RPE != nil {
		r := *s.RPE
		rpe = &r
	}
	weight := ""
	if !s.Weight.IsNotApplicable() {
		weight = s.Weight.String()
	}
	return SetValues{
		Weight: weight,
		Reps:   s.Reps.String(),
		RPE:    rpe,
		Notes:  s.Notes,
	}
}
