package progression

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/2beens/gymtracker/internal/gymstats/workout"
)

var ErrNotApplicable = errors.New("suggestion cannot be applied")

type Kind string

const (
	KindDisabled        Kind = "disabled"
	KindBeatLastResult  Kind = "beat_last_result"
	KindFirstTime       Kind = "first_time"
	KindIncreaseWeight  Kind = "increase_weight"
	KindIncreaseReps    Kind = "increase_reps"
	KindBuildToRangeTop Kind = "build_to_range_top"
	KindRestate         Kind = "restate_last"
)

type Values struct {
	Weight workout.Measurement `json:"weight"`
	Reps   workout.Measurement `json:"reps"`
}

type Suggestion struct {
	ExerciseID      string               `json:"exerciseId"`
	TrackingType    workout.TrackingType `json:"trackingType"`
	Kind            Kind                 `json:"kind"`
	Disabled        bool                 `json:"disabled"`
	Message         string               `json:"message"`
	SuggestedValues *Values              `json:"suggestedValues,omitempty"`
	// Reasoning explains which historical session and values were used.
	// Clients show it only on request.
	Reasoning string `json:"reasoning,omitempty"`
}

// DeriveSuggestion computes the suggestion for the next set of an exercise.
// History does not need to be sorted.
func DeriveSuggestion(
	exercise workout.ExerciseMetadata,
	trackingType workout.TrackingType,
	history []workout.PastSession,
	rules Rules,
) Suggestion {
	s := Suggestion{
		ExerciseID:   exercise.ID,
		TrackingType: trackingType,
	}
	name := exerciseName(exercise)

	if !rules.Enabled {
		s.Kind = KindDisabled
		s.Disabled = true
		s.Message = "Progression suggestions are disabled in your settings."
		return s
	}

	last, lastSet, found := mostRecentFirstSet(history)

	if !trackingType.HasNumericInputs() {
		s.Kind = KindBeatLastResult
		if !found {
			s.Message = fmt.Sprintf("Try to beat your last %s result.", name)
			s.Reasoning = fmt.Sprintf("No previous %s sessions recorded.", name)
			return s
		}
		s.Message = fmt.Sprintf("Try to beat your last result: %s.", lastSet.Reps)
		s.Reasoning = fmt.Sprintf(
			"Last %s session on %s, first set: %s.",
			name, formatDate(last), describeSet(lastSet),
		)
		return s
	}

	if !found {
		s.Kind = KindFirstTime
		s.Message = fmt.Sprintf("First time doing %s, do your best and pick a comfortable weight.", name)
		s.Reasoning = fmt.Sprintf("No previous %s sessions recorded.", name)
		return s
	}

	reasoningBase := fmt.Sprintf(
		"Last %s session on %s, first set: %s",
		name, formatDate(last), describeSet(lastSet),
	)
	lastWeight, weightNumeric := lastSet.Weight.Number()
	lastReps, repsNumeric := lastSet.Reps.Number()

	switch {
	case rules.SelectedModel == ModelLinearWeight && weightNumeric && repsNumeric:
		inc := rules.linearWeightIncrement()
		s.Kind = KindIncreaseWeight
		s.SuggestedValues = &Values{
			Weight: workout.Numeric(lastWeight + inc),
			Reps:   workout.Numeric(lastReps),
		}
		s.Message = fmt.Sprintf(
			"Add %s to the bar: %s x %s.",
			formatNumber(inc), s.SuggestedValues.Weight, s.SuggestedValues.Reps,
		)
		s.Reasoning = fmt.Sprintf(
			"%s. Linear weight progression adds %s at the same reps.",
			reasoningBase, formatNumber(inc),
		)
		return s

	case rules.SelectedModel == ModelLinearReps && repsNumeric:
		inc := rules.linearRepsIncrement()
		s.Kind = KindIncreaseReps
		s.SuggestedValues = &Values{
			Weight: lastSet.Weight,
			Reps:   workout.Numeric(lastReps + float64(inc)),
		}
		s.Message = fmt.Sprintf(
			"Same weight, %d more rep(s): %s x %s.",
			inc, s.SuggestedValues.Weight, s.SuggestedValues.Reps,
		)
		s.Reasoning = fmt.Sprintf(
			"%s. Linear reps progression adds %d rep(s) at the same weight.",
			reasoningBase, inc,
		)
		return s

	case rules.SelectedModel == ModelDoubleProgression && rules.DoubleProgressionRepRange.IsSet() && repsNumeric:
		repRange := rules.DoubleProgressionRepRange
		if lastReps >= float64(repRange.Max) {
			if !weightNumeric {
				break
			}
			inc := rules.doubleWeightIncrement()
			s.Kind = KindIncreaseWeight
			s.SuggestedValues = &Values{
				Weight: workout.Numeric(lastWeight + inc),
				Reps:   workout.Numeric(float64(repRange.Min)),
			}
			s.Message = fmt.Sprintf(
				"Top of the %d-%d range reached. Add %s and drop back to %d reps: %s x %s.",
				repRange.Min, repRange.Max, formatNumber(inc), repRange.Min,
				s.SuggestedValues.Weight, s.SuggestedValues.Reps,
			)
			s.Reasoning = fmt.Sprintf(
				"%s. %s reps is at or above the range top of %d, so the weight goes up by %s and reps reset to %d.",
				reasoningBase, formatNumber(lastReps), repRange.Max, formatNumber(inc), repRange.Min,
			)
			return s
		}

		inc := rules.doubleRepIncrement()
		s.Kind = KindBuildToRangeTop
		s.SuggestedValues = &Values{
			Weight: lastSet.Weight,
			Reps:   workout.Numeric(lastReps + float64(inc)),
		}
		s.Message = fmt.Sprintf(
			"Still building toward the top of the %d-%d range: %s x %s.",
			repRange.Min, repRange.Max, s.SuggestedValues.Weight, s.SuggestedValues.Reps,
		)
		s.Reasoning = fmt.Sprintf(
			"%s. %s reps is below the range top of %d, so keep the weight and add %d rep(s).",
			reasoningBase, formatNumber(lastReps), repRange.Max, inc,
		)
		return s
	}

	s.Kind = KindRestate
	s.SuggestedValues = &Values{
		Weight: lastSet.Weight,
		Reps:   lastSet.Reps,
	}
	s.Message = fmt.Sprintf(
		"Last time: %s. Adjust manually if you feel ready for more.",
		describeSet(lastSet),
	)
	s.Reasoning = fmt.Sprintf("%s. %s", reasoningBase, restateReason(rules))
	return s
}

// ApplySuggestion returns the form values to prefill from a suggestion.
func ApplySuggestion(s Suggestion) (workout.SetValues, error) {
	if s.Disabled || !s.TrackingType.HasNumericInputs() || s.SuggestedValues == nil {
		return workout.SetValues{}, ErrNotApplicable
	}

	values := workout.SetValues{
		Reps: s.SuggestedValues.Reps.String(),
	}
	if !s.SuggestedValues.Weight.IsNotApplicable() {
		values.Weight = s.SuggestedValues.Weight.String()
	}
	return values, nil
}

func mostRecentFirstSet(history []workout.PastSession) (workout.PastSession, workout.PerformedSet, bool) {
	sessions := make([]workout.PastSession, 0, len(history))
	for _, h := range history {
		if len(h.SetsPerformed) > 0 {
			sessions = append(sessions, h)
		}
	}
	if len(sessions) == 0 {
		return workout.PastSession{}, workout.PerformedSet{}, false
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date.After(sessions[j].Date)
	})
	return sessions[0], sessions[0].SetsPerformed[0], true
}

func restateReason(rules Rules) string {
	if rules.SelectedModel == ModelNone {
		return "No progression model is selected."
	}
	if rules.SelectedModel == ModelDoubleProgression && !rules.DoubleProgressionRepRange.IsSet() {
		return "Double progression needs a rep range."
	}
	return fmt.Sprintf("The %s model needs numeric weight and reps.", rules.SelectedModel)
}

func exerciseName(meta workout.ExerciseMetadata) string {
	if meta.Name != "" {
		return meta.Name
	}
	return meta.ID
}

func describeSet(set workout.PerformedSet) string {
	if set.Weight.IsNotApplicable() {
		return set.Reps.String()
	}
	return fmt.Sprintf("%s x %s", set.Weight, set.Reps)
}

func formatDate(s workout.PastSession) string {
	return s.Date.Format("2006-01-02")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
