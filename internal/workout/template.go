package workout

type WorkoutType string

const (
	TypeStrength WorkoutType = "strength"
	TypeCardio   WorkoutType = "cardio"
	TypeHIIT     WorkoutType = "hiit"
	TypeYoga     WorkoutType = "yoga"
	TypeSwimming WorkoutType = "swimming"
	TypeCycling  WorkoutType = "cycling"
	TypeRunning  WorkoutType = "running"
	TypeWalking  WorkoutType = "walking"
)

// WorkoutTemplate is a reusable planned workout definition. Completed
// workouts reference it by id, and keep working after it is deleted.
type WorkoutTemplate struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        WorkoutType    `json:"type,omitempty"`
	Duration    FlexInt        `json:"duration,omitempty"` // minutes
	Frequency   []string       `json:"frequency,omitempty"`
	Equipment   []string       `json:"equipment,omitempty"`
	Notes       string         `json:"notes,omitempty"`
	Exercises   []ExerciseSpec `json:"exercises"`
	IsTemplate  bool           `json:"isTemplate"`
	CreatedAt   string         `json:"createdAt,omitempty"`
	LastUpdated string         `json:"lastUpdated,omitempty"`
}
