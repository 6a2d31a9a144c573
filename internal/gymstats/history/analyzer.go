package history

import (
	"context"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymtracker/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=history_test

type setEntriesRepo interface {
	ListSetEntries(ctx context.Context, exerciseID string) (_ []SetEntry, err error)
	ListSessions(ctx context.Context, params ListSessionsParams) (_ []SessionRecord, err error)
}

// ProgressData represents progress statistics of one exercise for a specific date.
// Weight figures only take numeric weights into account.
type ProgressData struct {
	Date        time.Time `json:"date"`
	AvgWeight   float64   `json:"avgWeight"`
	MaxWeight   float64   `json:"maxWeight"`
	AvgReps     float64   `json:"avgReps"`
	TotalVolume float64   `json:"totalVolume"` // sum of (weight * reps) for the day
	SetCount    int       `json:"setCount"`
}

type Analyzer struct {
	repo setEntriesRepo
}

func NewAnalyzer(repo setEntriesRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

// ExerciseProgress groups all stored sets of the exercise by day, oldest day first.
func (a *Analyzer) ExerciseProgress(ctx context.Context, exerciseID string) (_ []ProgressData, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.history.exercise_progress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.id", exerciseID))

	entries, err := a.repo.ListSetEntries(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	day2entries := make(map[time.Time][]SetEntry)
	for _, e := range entries {
		day := e.PerformedAt.Truncate(24 * time.Hour)
		day2entries[day] = append(day2entries[day], e)
	}

	progress := make([]ProgressData, 0, len(day2entries))
	for day, dayEntries := range day2entries {
		data := ProgressData{
			Date:     day,
			SetCount: len(dayEntries),
		}

		var weightSum, repsSum float64
		var weightCount, repsCount int
		for _, e := range dayEntries {
			weight, weightOk := e.Weight.Number()
			reps, repsOk := e.Reps.Number()
			if weightOk {
				weightSum += weight
				weightCount++
				if weight > data.MaxWeight {
					data.MaxWeight = weight
				}
			}
			if repsOk {
				repsSum += reps
				repsCount++
			}
			if weightOk && repsOk {
				data.TotalVolume += weight * reps
			}
		}
		if weightCount > 0 {
			data.AvgWeight = round2(weightSum / float64(weightCount))
		}
		if repsCount > 0 {
			data.AvgReps = round2(repsSum / float64(repsCount))
		}

		progress = append(progress, data)
	}

	sort.Slice(progress, func(i, j int) bool {
		return progress[i].Date.Before(progress[j].Date)
	})

	return progress, nil
}

type AvgDurationResponse struct {
	// Duration is the average duration of all workouts in range
	Duration time.Duration `json:"duration"`
	// DurationPerDay is the average workout duration for each day
	DurationPerDay map[time.Time]time.Duration `json:"durationPerDay"`
}

// AvgSessionDuration calculates the average workout duration overall and for each day.
func (a *Analyzer) AvgSessionDuration(
	ctx context.Context,
	params ListSessionsParams,
) (_ *AvgDurationResponse, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.history.avg_session_duration")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sessions, err := a.repo.ListSessions(ctx, params)
	if err != nil {
		return nil, err
	}

	day2durations := make(map[time.Time][]time.Duration)
	for _, s := range sessions {
		day := s.StartTime.Truncate(24 * time.Hour)
		day2durations[day] = append(day2durations[day], time.Duration(s.TotalTimeSeconds)*time.Second)
	}

	avgDurationPerDay := make(map[time.Time]time.Duration)
	for day, durations := range day2durations {
		var sum time.Duration
		for _, d := range durations {
			sum += d
		}
		avgDurationPerDay[day] = sum / time.Duration(len(durations))
	}

	if len(sessions) == 0 {
		return &AvgDurationResponse{
			Duration:       0,
			DurationPerDay: avgDurationPerDay,
		}, nil
	}

	var total time.Duration
	for _, s := range sessions {
		total += time.Duration(s.TotalTimeSeconds) * time.Second
	}

	return &AvgDurationResponse{
		Duration:       total / time.Duration(len(sessions)),
		DurationPerDay: avgDurationPerDay,
	}, nil
}

type ExercisePercentageInfo struct {
	Sets       int     `json:"sets"`
	Percentage float64 `json:"percentage"`
}

// ExercisePercentages returns the share of all recorded sets that each exercise takes.
func (a *Analyzer) ExercisePercentages(ctx context.Context) (_ map[string]ExercisePercentageInfo, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.history.exercise_percentages")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entries, err := a.repo.ListSetEntries(ctx, "")
	if err != nil {
		return nil, err
	}

	exercise2count := make(map[string]int)
	for _, e := range entries {
		exercise2count[e.ExerciseID]++
	}

	exercise2percentage := make(map[string]ExercisePercentageInfo)
	for exercise, count := range exercise2count {
		p := float64(count) / float64(len(entries)) * 100
		exercise2percentage[exercise] = ExercisePercentageInfo{
			Sets: count,
			// leave only 2 decimals
			Percentage: float64(int(p*100)) / 100,
		}
	}

	return exercise2percentage, nil
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
