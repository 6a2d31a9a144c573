package workout

import "strings"

// TrackingType decides which inputs and suggestion wording apply to an exercise.
type TrackingType string

const (
	TrackingWeightReps TrackingType = "weight_reps"
	TrackingTime       TrackingType = "time"
	TrackingDistance   TrackingType = "distance"
	TrackingRepsOnly   TrackingType = "reps_only"
	TrackingOther      TrackingType = "other"
)

func (t TrackingType) String() string {
	return string(t)
}

// HasNumericInputs is false for time and distance, where reps carry a duration or distance string.
func (t TrackingType) HasNumericInputs() bool {
	return t != TrackingTime && t != TrackingDistance
}

var (
	timeKeywords = []string{
		"plank", "hold", "wall sit", "hang", "stretch", "isometric",
		"jump rope", "skipping", "elliptical", "stair", "hiit", "interval",
	}
	distanceKeywords = []string{
		"run", "jog", "sprint", "walk", "row", "cycl", "bike", "swim",
		"ski erg", "carry", "sled", "hike",
	}
	repsOnlyKeywords = []string{
		"push-up", "push up", "pushup", "pull-up", "pull up", "pullup",
		"chin-up", "chin up", "chinup", "dip", "sit-up", "sit up", "situp",
		"crunch", "burpee", "air squat", "jumping jack", "mountain climber",
		"leg raise", "muscle-up", "muscle up",
	}
	weightKeywords = []string{
		"barbell", "dumbbell", "kettlebell", "cable", "machine", "smith",
		"press", "squat", "deadlift", "curl", "row", "fly", "raise",
		"extension", "lunge", "thrust", "pulldown", "shrug",
	}

	timeCategories     = []string{"flexibility", "mobility", "isometric", "stretching", "yoga"}
	distanceCategories = []string{"cardio", "endurance"}
	repsOnlyCategories = []string{"bodyweight", "calisthenics", "plyometrics"}
	weightCategories   = []string{
		"strength", "weights", "weightlifting", "powerlifting", "olympic",
		"hypertrophy", "chest", "back", "legs", "shoulders", "arms", "biceps",
		"triceps", "glutes", "core",
	}
)

// DeriveTrackingType maps catalog metadata to a tracking type. It only looks at
// the exercise name and category, so the same metadata always gives the same result.
func DeriveTrackingType(meta ExerciseMetadata) TrackingType {
	name := strings.ToLower(strings.TrimSpace(meta.Name))
	if name == "" {
		name = strings.ToLower(strings.ReplaceAll(meta.ID, "_", " "))
	}
	category := strings.ToLower(strings.TrimSpace(meta.Category))

	switch {
	case containsAny(name, repsOnlyKeywords):
		return TrackingRepsOnly
	case containsAny(name, timeKeywords):
		return TrackingTime
	case hasPrefixAny(category, distanceCategories) && containsAny(name, distanceKeywords):
		return TrackingDistance
	case hasPrefixAny(category, distanceCategories):
		return TrackingTime
	case hasPrefixAny(category, timeCategories):
		return TrackingTime
	case hasPrefixAny(category, repsOnlyCategories):
		return TrackingRepsOnly
	case hasPrefixAny(category, weightCategories), containsAny(name, weightKeywords):
		return TrackingWeightReps
	case containsAny(name, distanceKeywords):
		return TrackingDistance
	default:
		return TrackingOther
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func hasPrefixAny(s string, prefixes []string) bool {
	if s == "" {
		return false
	}
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
