package exercises

import (
	"time"

	"github.com/2beens/gymtracker/internal/gymstats/workout"
)

var MuscleGroup = struct {
	Biceps    string
	Triceps   string
	Back      string
	Legs      string
	Chest     string
	Shoulders string
	Core      string
	FullBody  string
	Other     string
}{
	Biceps:    "biceps",
	Triceps:   "triceps",
	Back:      "back",
	Legs:      "legs",
	Chest:     "chest",
	Shoulders: "shoulders",
	Core:      "core",
	FullBody:  "full_body",
	Other:     "other",
}

var MuscleGroups = []string{
	MuscleGroup.Biceps,
	MuscleGroup.Triceps,
	MuscleGroup.Back,
	MuscleGroup.Legs,
	MuscleGroup.Chest,
	MuscleGroup.Shoulders,
	MuscleGroup.Core,
	MuscleGroup.FullBody,
	MuscleGroup.Other,
}

// ExerciseType is a catalog entry. Category drives the tracking type of the exercise.
type ExerciseType struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	MuscleGroup  string    `json:"muscleGroup"`
	Instructions string    `json:"instructions"`
	VideoURL     string    `json:"videoUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (et ExerciseType) Metadata() workout.ExerciseMetadata {
	return workout.ExerciseMetadata{
		ID:           et.ID,
		Name:         et.Name,
		Category:     et.Category,
		MuscleGroup:  et.MuscleGroup,
		Instructions: et.Instructions,
		VideoURL:     et.VideoURL,
	}
}
