package workout

// ExerciseKind discriminates the two exercise variants. Every consumer
// switches exhaustively on it instead of branching on the raw
// isDurationBased flag scattered through the stored data.
type ExerciseKind int

const (
	KindStrength ExerciseKind = iota
	KindDuration
)

const (
	DurationUnitSeconds = "sec"
	DurationUnitMinutes = "min"
)

// ExerciseSpec is one planned exercise inside a workout template.
// Strength exercises carry sets/reps/weight, duration exercises carry
// sets/duration/durationUnit/distance. The JSON shape keeps the
// isDurationBased flag for data-file compatibility.
type ExerciseSpec struct {
	Name            string     `json:"name"`
	IsDurationBased bool       `json:"isDurationBased,omitempty"`
	Sets            *FlexInt   `json:"sets,omitempty"`
	Reps            FlexString `json:"reps,omitempty"`
	Weight          FlexString `json:"weight,omitempty"`
	Duration        *FlexFloat `json:"duration,omitempty"`
	DurationUnit    string     `json:"durationUnit,omitempty"`
	Distance        string     `json:"distance,omitempty"`
}

func (e ExerciseSpec) Kind() ExerciseKind {
	if e.IsDurationBased {
		return KindDuration
	}
	return KindStrength
}

// LoggedExercise is an ExerciseSpec as performed in a completed
// workout: the planned fields plus an actual* shadow of each one.
// Absent actual* fields fall back to the planned values.
//
// The actual* fields of the strength variant are pointers on purpose:
// an explicitly logged empty weight is a real override, distinct from
// the field not being logged at all.
type LoggedExercise struct {
	ExerciseSpec

	Completed          *bool       `json:"completed,omitempty"`
	ActualSets         *FlexInt    `json:"actualSets,omitempty"`
	ActualReps         *FlexString `json:"actualReps,omitempty"`
	ActualWeight       *FlexString `json:"actualWeight,omitempty"`
	ActualDuration     *FlexFloat  `json:"actualDuration,omitempty"`
	ActualDurationUnit string      `json:"actualDurationUnit,omitempty"`
	ActualDistance     string      `json:"actualDistance,omitempty"`
	ActualIntensity    FlexString  `json:"actualIntensity,omitempty"`
}

// IsCompleted treats an absent completed flag as done, so records
// logged before the flag existed are not penalized in completion rates.
func (e LoggedExercise) IsCompleted() bool {
	return e.Completed == nil || *e.Completed
}

// EffectiveSets resolves actualSets ?? sets ?? variant default
// (1 for duration exercises, 0 for strength).
func (e LoggedExercise) EffectiveSets() int {
	if e.ActualSets != nil {
		return int(*e.ActualSets)
	}
	if e.Sets != nil {
		return int(*e.Sets)
	}
	switch e.Kind() {
	case KindDuration:
		return 1
	case KindStrength:
		return 0
	}
	return 0
}

func (e LoggedExercise) EffectiveReps() float64 {
	if e.ActualReps != nil {
		return e.ActualReps.Number()
	}
	return e.Reps.Number()
}

func (e LoggedExercise) EffectiveWeight() float64 {
	if e.ActualWeight != nil {
		return e.ActualWeight.Number()
	}
	return e.Weight.Number()
}

// Volume is sets x reps x weight, with every factor coerced
// parse-or-zero. Only meaningful for the strength variant.
func (e LoggedExercise) Volume() float64 {
	return float64(e.EffectiveSets()) * e.EffectiveReps() * e.EffectiveWeight()
}

func (e LoggedExercise) effectiveDurationValue() float64 {
	if e.ActualDuration != nil {
		return float64(*e.ActualDuration)
	}
	if e.Duration != nil {
		return float64(*e.Duration)
	}
	return 0
}

func (e LoggedExercise) effectiveDurationUnit() string {
	if e.ActualDurationUnit != "" {
		return e.ActualDurationUnit
	}
	if e.DurationUnit != "" {
		return e.DurationUnit
	}
	return DurationUnitMinutes
}

// EffectiveDurationSeconds normalizes the effective duration to
// seconds ("min" values are multiplied by 60, anything else is taken
// as seconds already).
func (e LoggedExercise) EffectiveDurationSeconds() float64 {
	v := e.effectiveDurationValue()
	if e.effectiveDurationUnit() == DurationUnitMinutes {
		return v * 60
	}
	return v
}

// EffectiveDistance parses the first numeric token out of the
// free-text distance ("5 km" -> 5). An empty actual distance falls
// back to the planned one.
func (e LoggedExercise) EffectiveDistance() float64 {
	d := e.Distance
	if e.ActualDistance != "" {
		d = e.ActualDistance
	}
	return ParseLeadingNumber(d)
}

// Pace is seconds per distance unit - lower is better. Zero means no
// pace can be derived (no distance covered).
func (e LoggedExercise) Pace() float64 {
	distance := e.EffectiveDistance()
	if distance <= 0 {
		return 0
	}
	return e.EffectiveDurationSeconds() / distance
}
