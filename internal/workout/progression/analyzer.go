package progression

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkovacevic/trainlog/internal/telemetry/tracing"
	"github.com/mkovacevic/trainlog/internal/workout"

	"go.opentelemetry.io/otel/attribute"
)

// DefaultHistoryLimit caps progression history lookups when the caller
// does not ask for a specific amount.
const DefaultHistoryLimit = 10

//go:generate mockgen -source=analyzer.go -destination=mocks_test.go -package=progression_test

// completedLog is the slice of the workout log the engine reads. The
// engine never caches: every query recomputes from the full history.
type completedLog interface {
	GetAllCompletedWorkouts(ctx context.Context) ([]workout.CompletedWorkout, error)
}

type Analyzer struct {
	repo  completedLog
	clock workout.Clock
}

func NewAnalyzer(repo completedLog, clock workout.Clock) *Analyzer {
	if clock == nil {
		clock = workout.NewSystemClock()
	}
	return &Analyzer{
		repo:  repo,
		clock: clock,
	}
}

// ExercisePerformance is a logged exercise annotated with where it
// comes from: the calendar date, the containing completed workout and
// the template that workout was logged from (may dangle or be empty).
type ExercisePerformance struct {
	workout.LoggedExercise

	Date               string `json:"date"`
	CompletedWorkoutID string `json:"completedWorkoutId"`
	WorkoutID          string `json:"workoutId,omitempty"`
}

// PreviousExercisePerformance finds the most recent performance of the
// named exercise, skipping the completed workout with excludeID (so an
// exercise can be compared against what came before it, not itself).
// Names match case-insensitively. Returns nil when no history exists.
func (a *Analyzer) PreviousExercisePerformance(
	ctx context.Context,
	exerciseName, excludeID string,
) (_ *ExercisePerformance, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progression.previousExercisePerformance")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise", exerciseName))

	all, err := a.repo.GetAllCompletedWorkouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("get completed workouts: %w", err)
	}

	// newest-first already, the first match is the previous performance
	for _, w := range all {
		if excludeID != "" && w.ID == excludeID {
			continue
		}
		for _, ex := range w.Exercises {
			if !strings.EqualFold(ex.Name, exerciseName) {
				continue
			}
			return &ExercisePerformance{
				LoggedExercise:     ex,
				Date:               w.CalendarDate(),
				CompletedWorkoutID: w.ID,
				WorkoutID:          w.WorkoutID,
			}, nil
		}
	}
	return nil, nil
}

// HistoryEntry is one past performance flattened to effective values,
// with the actual-or-planned resolution already applied.
type HistoryEntry struct {
	Date               string               `json:"date"`
	CompletedWorkoutID string               `json:"completedWorkoutId"`
	WorkoutID          string               `json:"workoutId,omitempty"`
	ExerciseName       string               `json:"exerciseName"`
	Kind               workout.ExerciseKind `json:"-"`

	Sets   int     `json:"sets"`
	Reps   float64 `json:"reps"`
	Weight float64 `json:"weight"`
	Volume float64 `json:"volume"`

	DurationSeconds float64 `json:"durationSeconds"`
	Distance        float64 `json:"distance"`
	Pace            float64 `json:"pace"` // seconds per distance unit, 0 = not derivable
}

// ExerciseProgressionHistory collects every performance of the named
// exercise across all time, newest-first, truncated to limit
// (DefaultHistoryLimit when limit is not positive).
func (a *Analyzer) ExerciseProgressionHistory(
	ctx context.Context,
	exerciseName string,
	limit int,
) (_ []HistoryEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progression.exerciseProgressionHistory")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise", exerciseName))
	span.SetAttributes(attribute.Int("limit", limit))

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	all, err := a.repo.GetAllCompletedWorkouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("get completed workouts: %w", err)
	}

	history := make([]HistoryEntry, 0)
	for _, w := range all {
		for _, ex := range w.Exercises {
			if !strings.EqualFold(ex.Name, exerciseName) {
				continue
			}
			history = append(history, newHistoryEntry(w, ex))
			if len(history) == limit {
				return history, nil
			}
		}
	}
	return history, nil
}

func newHistoryEntry(w workout.CompletedWorkout, ex workout.LoggedExercise) HistoryEntry {
	entry := HistoryEntry{
		Date:               w.CalendarDate(),
		CompletedWorkoutID: w.ID,
		WorkoutID:          w.WorkoutID,
		ExerciseName:       ex.Name,
		Kind:               ex.Kind(),
	}
	switch ex.Kind() {
	case workout.KindStrength:
		entry.Sets = ex.EffectiveSets()
		entry.Reps = ex.EffectiveReps()
		entry.Weight = ex.EffectiveWeight()
		entry.Volume = ex.Volume()
	case workout.KindDuration:
		entry.Sets = ex.EffectiveSets()
		entry.DurationSeconds = ex.EffectiveDurationSeconds()
		entry.Distance = ex.EffectiveDistance()
		entry.Pace = ex.Pace()
	}
	return entry
}

// ExerciseAggregate sums up everything ever logged for one exercise.
type ExerciseAggregate struct {
	ExerciseName         string               `json:"exerciseName"`
	Kind                 workout.ExerciseKind `json:"-"`
	Sessions             int                  `json:"sessions"`
	TotalVolume          float64              `json:"totalVolume"`
	TotalDurationSeconds float64              `json:"totalDurationSeconds"`
	TotalDistance        float64              `json:"totalDistance"`
	LastPerformed        string               `json:"lastPerformed"`
}

// ExerciseBreakdown aggregates per-exercise totals across the whole
// history, keyed by lowercased exercise name.
func (a *Analyzer) ExerciseBreakdown(ctx context.Context) (_ map[string]*ExerciseAggregate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progression.exerciseBreakdown")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	all, err := a.repo.GetAllCompletedWorkouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("get completed workouts: %w", err)
	}

	breakdown := make(map[string]*ExerciseAggregate)
	for _, w := range all {
		for _, ex := range w.Exercises {
			if ex.Name == "" {
				continue
			}
			key := strings.ToLower(ex.Name)
			agg, ok := breakdown[key]
			if !ok {
				agg = &ExerciseAggregate{
					ExerciseName: ex.Name,
					Kind:         ex.Kind(),
				}
				breakdown[key] = agg
			}
			agg.Sessions++
			// workouts come newest-first, the first sighting is the latest
			if agg.LastPerformed == "" {
				agg.LastPerformed = w.CalendarDate()
			}
			switch ex.Kind() {
			case workout.KindStrength:
				agg.TotalVolume += ex.Volume()
			case workout.KindDuration:
				agg.TotalDurationSeconds += ex.EffectiveDurationSeconds()
				agg.TotalDistance += ex.EffectiveDistance()
			}
		}
	}
	return breakdown, nil
}
