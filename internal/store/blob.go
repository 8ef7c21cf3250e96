package store

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/mkovacevic/trainlog/internal/workout"
)

// Reserved top-level keys of the data blob. Everything else is either
// a YYYY-MM-DD date bucket or foreign data that must pass through
// reads and writes untouched.
const (
	keyTemplates = "workouts"
	keyCompleted = "completedWorkouts"
)

var dateKeyRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func IsDateKey(key string) bool {
	return dateKeyRegex.MatchString(key)
}

// DayBucket is the per-date index of completed workouts. Older data
// files hold a single record under "workout", current ones an array
// under "workouts". Any other per-day keys (meditation sessions etc.)
// are kept verbatim in Extra.
type DayBucket struct {
	Workout  *workout.CompletedWorkout
	Workouts []workout.CompletedWorkout
	Extra    map[string]json.RawMessage
}

func (d *DayBucket) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key, value := range raw {
		switch key {
		case "workout":
			var w workout.CompletedWorkout
			if err := json.Unmarshal(value, &w); err != nil {
				return fmt.Errorf("unmarshal legacy workout: %w", err)
			}
			d.Workout = &w
		case "workouts":
			if err := json.Unmarshal(value, &d.Workouts); err != nil {
				return fmt.Errorf("unmarshal workouts: %w", err)
			}
		default:
			if d.Extra == nil {
				d.Extra = make(map[string]json.RawMessage)
			}
			d.Extra[key] = value
		}
	}
	return nil
}

func (d *DayBucket) MarshalJSON() ([]byte, error) {
	raw := make(map[string]json.RawMessage, len(d.Extra)+2)
	for key, value := range d.Extra {
		raw[key] = value
	}
	if d.Workout != nil {
		value, err := json.Marshal(d.Workout)
		if err != nil {
			return nil, fmt.Errorf("marshal legacy workout: %w", err)
		}
		raw["workout"] = value
	}
	if len(d.Workouts) > 0 {
		value, err := json.Marshal(d.Workouts)
		if err != nil {
			return nil, fmt.Errorf("marshal workouts: %w", err)
		}
		raw["workouts"] = value
	}
	return json.Marshal(raw)
}

func (d *DayBucket) IsEmpty() bool {
	return d == nil || (d.Workout == nil && len(d.Workouts) == 0 && len(d.Extra) == 0)
}

// Blob is the entire persisted tracker state. Missing collections are
// always usable as empty ones, never as errors.
type Blob struct {
	Templates []workout.WorkoutTemplate
	Completed []workout.CompletedWorkout
	Days      map[string]*DayBucket
	Extra     map[string]json.RawMessage
}

func NewBlob() *Blob {
	return &Blob{
		Templates: []workout.WorkoutTemplate{},
		Completed: []workout.CompletedWorkout{},
		Days:      make(map[string]*DayBucket),
		Extra:     make(map[string]json.RawMessage),
	}
}

func (b *Blob) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	b.Templates = []workout.WorkoutTemplate{}
	b.Completed = []workout.CompletedWorkout{}
	b.Days = make(map[string]*DayBucket)
	b.Extra = make(map[string]json.RawMessage)

	for key, value := range raw {
		switch {
		case key == keyTemplates:
			if err := json.Unmarshal(value, &b.Templates); err != nil {
				return fmt.Errorf("unmarshal templates: %w", err)
			}
		case key == keyCompleted:
			if err := json.Unmarshal(value, &b.Completed); err != nil {
				return fmt.Errorf("unmarshal completed workouts: %w", err)
			}
		case IsDateKey(key):
			var bucket DayBucket
			if err := json.Unmarshal(value, &bucket); err != nil {
				return fmt.Errorf("unmarshal day bucket %s: %w", key, err)
			}
			b.Days[key] = &bucket
		default:
			b.Extra[key] = value
		}
	}
	return nil
}

func (b *Blob) MarshalJSON() ([]byte, error) {
	raw := make(map[string]json.RawMessage, len(b.Days)+len(b.Extra)+2)
	for key, value := range b.Extra {
		raw[key] = value
	}

	templates := b.Templates
	if templates == nil {
		templates = []workout.WorkoutTemplate{}
	}
	templatesJson, err := json.Marshal(templates)
	if err != nil {
		return nil, fmt.Errorf("marshal templates: %w", err)
	}
	raw[keyTemplates] = templatesJson

	completed := b.Completed
	if completed == nil {
		completed = []workout.CompletedWorkout{}
	}
	completedJson, err := json.Marshal(completed)
	if err != nil {
		return nil, fmt.Errorf("marshal completed workouts: %w", err)
	}
	raw[keyCompleted] = completedJson

	for date, bucket := range b.Days {
		if bucket.IsEmpty() {
			continue
		}
		bucketJson, err := json.Marshal(bucket)
		if err != nil {
			return nil, fmt.Errorf("marshal day bucket %s: %w", date, err)
		}
		raw[date] = bucketJson
	}

	return json.Marshal(raw)
}

// Day returns the bucket for a date, or nil when the date has none.
func (b *Blob) Day(date string) *DayBucket {
	if b.Days == nil {
		return nil
	}
	return b.Days[date]
}

// EnsureDay returns the bucket for a date, creating it when absent.
func (b *Blob) EnsureDay(date string) *DayBucket {
	if b.Days == nil {
		b.Days = make(map[string]*DayBucket)
	}
	bucket, ok := b.Days[date]
	if !ok {
		bucket = &DayBucket{}
		b.Days[date] = bucket
	}
	return bucket
}

// RemoveDayIfEmpty drops a date key whose bucket holds nothing anymore,
// so deletes leave no dangling empty entries behind.
func (b *Blob) RemoveDayIfEmpty(date string) {
	if bucket, ok := b.Days[date]; ok && bucket.IsEmpty() {
		delete(b.Days, date)
	}
}

// Clone deep-copies the blob through a JSON round trip.
func (b *Blob) Clone() (*Blob, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("marshal blob: %w", err)
	}
	var clone Blob
	if err := json.Unmarshal(data, &clone); err != nil {
		return nil, fmt.Errorf("unmarshal blob: %w", err)
	}
	return &clone, nil
}
