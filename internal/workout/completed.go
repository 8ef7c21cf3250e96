package workout

import "time"

// DateLayout is the calendar date format used for date-keyed storage.
const DateLayout = "2006-01-02"

// CompletedWorkout is one logged instance of performing a workout.
// WorkoutID points back to the template (empty for ad-hoc logs) and may
// dangle after the template is deleted - consumers must tolerate that.
type CompletedWorkout struct {
	ID          string           `json:"id"`
	Date        string           `json:"date,omitempty"`
	WorkoutID   string           `json:"workoutId,omitempty"`
	Name        string           `json:"name,omitempty"`
	CompletedAt string           `json:"completedAt,omitempty"`
	Timestamp   string           `json:"timestamp,omitempty"` // legacy, pre-completedAt records
	UpdatedAt   string           `json:"updatedAt,omitempty"`
	Duration    FlexFloat        `json:"duration,omitempty"` // minutes
	Calories    *FlexInt         `json:"calories,omitempty"`
	Intensity   FlexString       `json:"intensity,omitempty"` // 1-5 or a label
	Notes       string           `json:"notes,omitempty"`
	Type        WorkoutType      `json:"type,omitempty"`
	Types       []string         `json:"types,omitempty"`
	Exercises   []LoggedExercise `json:"exercises,omitempty"`
}

// OrderingTime is the authoritative ordering instant of a completed
// workout: completedAt, falling back to timestamp, then the calendar
// date. Every history lookup must order by this, in this precedence.
func (w CompletedWorkout) OrderingTime() time.Time {
	for _, v := range []string{w.CompletedAt, w.Timestamp} {
		if v == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t
		}
	}
	if w.Date != "" {
		if t, err := time.Parse(DateLayout, w.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}

// CalendarDate returns the workout's calendar date, derived from the
// ordering time when the date field itself is absent.
func (w CompletedWorkout) CalendarDate() string {
	if w.Date != "" {
		return w.Date
	}
	if t := w.OrderingTime(); !t.IsZero() {
		return t.Format(DateLayout)
	}
	return ""
}

// IntensityLevel normalizes the workout intensity to a 1-5 level.
func (w CompletedWorkout) IntensityLevel() (int, bool) {
	return NormalizeIntensity(string(w.Intensity))
}
