package progression

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mkovacevic/trainlog/internal/telemetry/tracing"
	"github.com/mkovacevic/trainlog/internal/workout"

	log "github.com/sirupsen/logrus"
)

// Stats aggregates a set of completed workouts for dashboard views.
type Stats struct {
	TotalWorkouts int     `json:"totalWorkouts"`
	TotalMinutes  float64 `json:"totalMinutes"`
	TotalCalories int     `json:"totalCalories"`
	// AvgIntensity is nil when no workout carries an intensity value -
	// missing intensity never counts as zero.
	AvgIntensity *float64 `json:"avgIntensity,omitempty"`
	// Consistency is distinct workout days over the inclusive day span
	// between the earliest and latest workout, as a percentage.
	Consistency float64 `json:"consistency"`
	// CompletionRate counts an exercise as completed unless its
	// completed flag is explicitly false.
	CompletionRate float64 `json:"completionRate"`
	CurrentStreak  int     `json:"currentStreak"`
	LongestStreak  int     `json:"longestStreak"`
}

// WorkoutStats computes the aggregate stats over the whole history.
func (a *Analyzer) WorkoutStats(ctx context.Context) (_ *Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progression.workoutStats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	all, err := a.repo.GetAllCompletedWorkouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("get completed workouts: %w", err)
	}
	return CalculateWorkoutStats(all, a.clock.Now()), nil
}

// CalculateWorkoutStats aggregates the given workouts. The caller
// picks the subset (all time, one month, one type); today anchors the
// current-streak walk.
func CalculateWorkoutStats(workouts []workout.CompletedWorkout, today time.Time) *Stats {
	stats := &Stats{
		TotalWorkouts: len(workouts),
	}

	var (
		intensitySum   int
		intensityCount int
		totalExercises int
		completedCount int
	)
	days := make(map[string]struct{})

	for _, w := range workouts {
		stats.TotalMinutes += float64(w.Duration)
		if w.Calories != nil {
			stats.TotalCalories += int(*w.Calories)
		}
		if level, ok := w.IntensityLevel(); ok {
			intensitySum += level
			intensityCount++
		}
		if date := w.CalendarDate(); date != "" {
			days[date] = struct{}{}
		}
		for _, ex := range w.Exercises {
			totalExercises++
			if ex.IsCompleted() {
				completedCount++
			}
		}
	}

	if intensityCount > 0 {
		avg := float64(intensitySum) / float64(intensityCount)
		stats.AvgIntensity = &avg
	}
	if totalExercises > 0 {
		stats.CompletionRate = float64(completedCount) / float64(totalExercises) * 100
	}

	dates := parseDays(days)
	if len(dates) > 0 {
		earliest := dates[0]
		latest := dates[len(dates)-1]
		// inclusive of both endpoints, a single-day history spans 1 day
		spanDays := int(latest.Sub(earliest).Hours()/24) + 1
		stats.Consistency = float64(len(dates)) / float64(spanDays) * 100

		stats.CurrentStreak = currentStreak(days, today)
		stats.LongestStreak = longestStreak(dates)
	}

	return stats
}

// parseDays returns the distinct workout days as times, ascending.
// Unparsable dates are dropped, not fatal.
func parseDays(days map[string]struct{}) []time.Time {
	dates := make([]time.Time, 0, len(days))
	for day := range days {
		t, err := time.Parse(workout.DateLayout, day)
		if err != nil {
			log.Warnf("stats: skipping unparsable workout date %q", day)
			continue
		}
		dates = append(dates, t)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
	return dates
}

// currentStreak walks backward one day at a time, starting from today
// when today has a workout, from yesterday when only yesterday does,
// and not at all otherwise.
func currentStreak(days map[string]struct{}, today time.Time) int {
	has := func(t time.Time) bool {
		_, ok := days[t.Format(workout.DateLayout)]
		return ok
	}

	day := today
	if !has(day) {
		day = day.AddDate(0, 0, -1)
		if !has(day) {
			return 0
		}
	}

	streak := 0
	for has(day) {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// longestStreak walks the ascending distinct dates, extending the run
// on exact next-day successors and resetting it on any gap.
func longestStreak(dates []time.Time) int {
	longest := 0
	run := 0
	for i, date := range dates {
		if i > 0 && dates[i-1].AddDate(0, 0, 1).Equal(date) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
