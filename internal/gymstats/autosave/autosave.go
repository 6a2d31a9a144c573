package autosave

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/2beens/gymtracker/internal/gymstats/workout"
)

// Store is implemented by RedisStore and SQLiteStore.
type Store interface {
	Get(ctx context.Context, workoutID string) (*workout.Snapshot, error)
	Put(ctx context.Context, workoutID string, snapshot workout.Snapshot) error
	Delete(ctx context.Context, workoutID string) error
	List(ctx context.Context) ([]Entry, error)
}

var (
	_ Store = (*RedisStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)

// Entry describes one stored snapshot, used by the admin tools.
type Entry struct {
	WorkoutID      string    `json:"workoutId"`
	TemplateName   string    `json:"templateName"`
	SetsRecorded   int       `json:"setsRecorded"`
	ElapsedSeconds int       `json:"elapsedSeconds"`
	SavedAt        time.Time `json:"savedAt"`
}

func entryFromSnapshot(workoutID string, s workout.Snapshot) Entry {
	return Entry{
		WorkoutID:      workoutID,
		TemplateName:   s.TemplateName,
		SetsRecorded:   s.RecordedSets.Count(),
		ElapsedSeconds: s.ElapsedSeconds,
		SavedAt:        s.SavedAt,
	}
}

// sortEntries orders entries by save time, most recent first.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].SavedAt.After(entries[j].SavedAt)
	})
}

func encodeSnapshot(s workout.Snapshot) ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return raw, nil
}

func decodeSnapshot(raw []byte) (*workout.Snapshot, error) {
	var s workout.Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: %s", workout.ErrSnapshotCorrupted, err)
	}
	if len(s.Exercises) == 0 {
		return nil, fmt.Errorf("%w: snapshot has no exercises", workout.ErrSnapshotCorrupted)
	}
	return &s, nil
}
