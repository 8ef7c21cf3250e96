package progression

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkovacevic/trainlog/internal/telemetry/tracing"
	"github.com/mkovacevic/trainlog/internal/workout"
)

// RecordValue is one best-ever value and the date it was achieved.
type RecordValue struct {
	Value float64 `json:"value"`
	Date  string  `json:"date"`
}

// PersonalRecord holds the best-ever metrics of one exercise. The
// strength trackers and the duration trackers are maximizers; BestPace
// is the one minimizer - lower seconds per distance unit is better -
// and starts out nil (no record), never zero.
type PersonalRecord struct {
	ExerciseName string `json:"exerciseName"`

	MaxWeight *RecordValue `json:"maxWeight,omitempty"`
	MaxReps   *RecordValue `json:"maxReps,omitempty"`
	MaxVolume *RecordValue `json:"maxVolume,omitempty"`

	MaxDurationSeconds *RecordValue `json:"maxDurationSeconds,omitempty"`
	MaxDistance        *RecordValue `json:"maxDistance,omitempty"`
	BestPace           *RecordValue `json:"bestPace,omitempty"`
}

// PersonalRecords recomputes the personal records of every exercise
// from the full completed-workout history, keyed by lowercased
// exercise name. Derived on demand, never stored.
func (a *Analyzer) PersonalRecords(ctx context.Context) (_ map[string]*PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "progression.personalRecords")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	all, err := a.repo.GetAllCompletedWorkouts(ctx)
	if err != nil {
		return nil, fmt.Errorf("get completed workouts: %w", err)
	}

	records := make(map[string]*PersonalRecord)
	for _, w := range all {
		date := w.CalendarDate()
		for _, ex := range w.Exercises {
			if ex.Name == "" {
				continue
			}
			key := strings.ToLower(ex.Name)
			record, ok := records[key]
			if !ok {
				record = &PersonalRecord{ExerciseName: ex.Name}
				records[key] = record
			}

			switch ex.Kind() {
			case workout.KindStrength:
				// record-breaking reps and record-breaking weight can
				// come from different sessions, each tracker is updated
				// on its own
				updateMax(&record.MaxWeight, ex.EffectiveWeight(), date)
				updateMax(&record.MaxReps, ex.EffectiveReps(), date)
				updateMax(&record.MaxVolume, ex.Volume(), date)
			case workout.KindDuration:
				updateMax(&record.MaxDurationSeconds, ex.EffectiveDurationSeconds(), date)
				updateMax(&record.MaxDistance, ex.EffectiveDistance(), date)
				if pace := ex.Pace(); pace > 0 {
					updateMin(&record.BestPace, pace, date)
				}
			}
		}
	}
	return records, nil
}

func updateMax(tracker **RecordValue, value float64, date string) {
	if *tracker == nil || value > (*tracker).Value {
		*tracker = &RecordValue{Value: value, Date: date}
	}
}

func updateMin(tracker **RecordValue, value float64, date string) {
	if *tracker == nil || value < (*tracker).Value {
		*tracker = &RecordValue{Value: value, Date: date}
	}
}
