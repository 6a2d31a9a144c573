package session

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound         = errors.New("workout session not found")
	ErrSessionFinished         = errors.New("workout session already finished")
	ErrNoPendingResume         = errors.New("no resume offer pending for workout")
	ErrSuggestionNotApplicable = errors.New("suggestion cannot be applied to the set form")
)

// SummarySubmitError is returned by Finish when the summary sink rejects the summary.
// The session and its autosave snapshot are left intact so finishing can be retried.
type SummarySubmitError struct {
	Err error
}

func (e *SummarySubmitError) Error() string {
	return fmt.Sprintf("submit workout summary: %s", e.Err)
}

func (e *SummarySubmitError) Unwrap() error {
	return e.Err
}
