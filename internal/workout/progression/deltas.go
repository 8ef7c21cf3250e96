package progression

import (
	"context"

	"github.com/mkovacevic/trainlog/internal/workout"
)

// ProgressDelta is the change between an exercise performance and the
// one before it. Positive strength/duration/distance deltas mean
// improvement; pace is the inverted metric, improvement there is a
// negative delta (fewer seconds per distance unit).
type ProgressDelta struct {
	Kind workout.ExerciseKind `json:"-"`

	SetsDelta   float64 `json:"setsDelta"`
	RepsDelta   float64 `json:"repsDelta"`
	WeightDelta float64 `json:"weightDelta"`
	VolumeDelta float64 `json:"volumeDelta"`

	DurationDelta float64 `json:"durationDelta"` // seconds
	DistanceDelta float64 `json:"distanceDelta"`
	PaceDelta     float64 `json:"paceDelta"`

	Improved bool `json:"improved"`
}

// CompareToPrevious computes the progress delta of current over
// previous. Both are resolved to effective (actual-or-planned) values
// first.
func CompareToPrevious(current, previous workout.LoggedExercise) ProgressDelta {
	delta := ProgressDelta{Kind: current.Kind()}

	switch current.Kind() {
	case workout.KindStrength:
		delta.SetsDelta = float64(current.EffectiveSets() - previous.EffectiveSets())
		delta.RepsDelta = current.EffectiveReps() - previous.EffectiveReps()
		delta.WeightDelta = current.EffectiveWeight() - previous.EffectiveWeight()
		delta.VolumeDelta = current.Volume() - previous.Volume()
		delta.Improved = delta.VolumeDelta > 0
	case workout.KindDuration:
		delta.DurationDelta = current.EffectiveDurationSeconds() - previous.EffectiveDurationSeconds()
		delta.DistanceDelta = current.EffectiveDistance() - previous.EffectiveDistance()

		currentPace := current.Pace()
		previousPace := previous.Pace()
		if currentPace > 0 && previousPace > 0 {
			delta.PaceDelta = currentPace - previousPace
			delta.Improved = delta.PaceDelta < 0
		} else {
			// no pace to compare, longer or farther counts as progress
			delta.Improved = delta.DurationDelta > 0 || delta.DistanceDelta > 0
		}
	}
	return delta
}

// ExerciseProgress compares a performance against the most recent
// prior performance of the same exercise, excluding the completed
// workout it belongs to. Returns nil when there is no history to
// compare against.
func (a *Analyzer) ExerciseProgress(
	ctx context.Context,
	exerciseName, excludeID string,
	current workout.LoggedExercise,
) (*ProgressDelta, error) {
	previous, err := a.PreviousExercisePerformance(ctx, exerciseName, excludeID)
	if err != nil {
		return nil, err
	}
	if previous == nil {
		return nil, nil
	}
	delta := CompareToPrevious(current, previous.LoggedExercise)
	return &delta, nil
}
