package sessions

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mkovacevic/trainlog/internal/store"
	"github.com/mkovacevic/trainlog/internal/telemetry/tracing"
	"github.com/mkovacevic/trainlog/internal/workout"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=service.go -destination=mocks_test.go -package=sessions_test

// recordStore is the slice of the record store the workout log needs.
type recordStore interface {
	Load(ctx context.Context) (*store.Blob, error)
	Save(ctx context.Context, blob *store.Blob) error
}

// ChangeNotifier gets told the date of every completed-workout
// mutation. The log only provides the hook point - what happens on a
// change (UI refresh, backup trigger) is the embedder's business.
type ChangeNotifier interface {
	WorkoutDataChanged(ctx context.Context, date string)
}

type noopNotifier struct{}

func (noopNotifier) WorkoutDataChanged(context.Context, string) {}

// Service is the completed workout log. Every record lives in two
// places at once - the flat completedWorkouts list and its date's
// bucket - and every mutation here keeps both in sync within a single
// store save.
type Service struct {
	store    recordStore
	clock    workout.Clock
	notifier ChangeNotifier
}

func NewService(recordStore recordStore, clock workout.Clock, notifier ChangeNotifier) *Service {
	if clock == nil {
		clock = workout.NewSystemClock()
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &Service{
		store:    recordStore,
		clock:    clock,
		notifier: notifier,
	}
}

// LogWorkout persists a finished session for the given date. With an
// existingID it edits that record in place, keeping its completedAt;
// an existingID found nowhere is logged and appended as new rather
// than failing, so no user data gets dropped. Without an existingID a
// fresh record is always created - duplicate submissions are the
// caller's problem, the log does not deduplicate by content.
func (s *Service) LogWorkout(
	ctx context.Context,
	date string,
	data workout.CompletedWorkout,
	existingID string,
) (_ *workout.CompletedWorkout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.logWorkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("date", date))
	span.SetAttributes(attribute.String("existing_id", existingID))

	blob, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load blob: %w", err)
	}

	now := s.clock.Now().UTC()
	record := data
	record.Date = date
	normalizeExercises(&record)

	var previous *workout.CompletedWorkout
	if existingID != "" {
		record.ID = existingID
		previous = findByID(blob, existingID)
		if previous != nil {
			if data.CompletedAt == "" {
				record.CompletedAt = previous.CompletedAt
				record.Timestamp = previous.Timestamp
			}
		} else {
			log.Warnf("log workout: record %s not found in any location, appending as new", existingID)
			if record.CompletedAt == "" {
				record.CompletedAt = now.Format(time.RFC3339)
			}
		}
		record.UpdatedAt = now.Format(time.RFC3339)
	} else {
		record.ID = workout.NewID("completed", now)
		if record.CompletedAt == "" {
			record.CompletedAt = now.Format(time.RFC3339)
		}
	}

	upsertFlat(blob, record)
	upsertBucket(blob, date, record, now)

	// an edit can move a record to another date; the old bucket must
	// not keep a stale copy
	if previous != nil && previous.Date != "" && previous.Date != date {
		if bucket := blob.Day(previous.Date); bucket != nil {
			removeFromBucket(bucket, record.ID)
			blob.RemoveDayIfEmpty(previous.Date)
		}
	}

	if err := s.store.Save(ctx, blob); err != nil {
		return nil, fmt.Errorf("save blob: %w", err)
	}

	log.Debugf("workout log: saved record %s for %s", record.ID, date)
	s.notifier.WorkoutDataChanged(ctx, date)

	return &record, nil
}

// DeleteCompletedWorkout removes the record from the date bucket and
// the flat list. Returns true iff at least one removal happened.
func (s *Service) DeleteCompletedWorkout(ctx context.Context, date, id string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.deleteCompletedWorkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("date", date))
	span.SetAttributes(attribute.String("id", id))

	blob, err := s.store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load blob: %w", err)
	}

	removed := false
	if bucket := blob.Day(date); bucket != nil {
		removed = removeFromBucket(bucket, id)
		blob.RemoveDayIfEmpty(date)
	}

	kept := blob.Completed[:0]
	for _, w := range blob.Completed {
		if w.ID == id {
			removed = true
			continue
		}
		kept = append(kept, w)
	}
	blob.Completed = kept

	if !removed {
		log.Debugf("workout log: nothing to delete for record %s on %s", id, date)
		return false, nil
	}

	if err := s.store.Save(ctx, blob); err != nil {
		return false, fmt.Errorf("save blob: %w", err)
	}

	log.Debugf("workout log: deleted record %s from %s", id, date)
	s.notifier.WorkoutDataChanged(ctx, date)

	return true, nil
}

// GetAllCompletedWorkouts merges the legacy singular and array bucket
// formats across every date and returns the records newest-first,
// ordered by completedAt, falling back to timestamp, then date.
func (s *Service) GetAllCompletedWorkouts(ctx context.Context) (_ []workout.CompletedWorkout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.getAllCompletedWorkouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	blob, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load blob: %w", err)
	}

	all := make([]workout.CompletedWorkout, 0)
	for date, bucket := range blob.Days {
		for _, w := range bucket.Workouts {
			if w.Date == "" {
				w.Date = date
			}
			all = append(all, w)
		}
		if bucket.Workout != nil {
			w := *bucket.Workout
			if w.Date == "" {
				w.Date = date
			}
			all = append(all, w)
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].OrderingTime().After(all[j].OrderingTime())
	})

	return all, nil
}

// GetCompletedWorkoutByID looks the record up in the flat list.
// Returns nil (and no error) when it is not there.
func (s *Service) GetCompletedWorkoutByID(ctx context.Context, id string) (_ *workout.CompletedWorkout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.getCompletedWorkoutByID")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id))

	blob, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load blob: %w", err)
	}

	for i := range blob.Completed {
		if blob.Completed[i].ID == id {
			w := blob.Completed[i]
			return &w, nil
		}
	}
	return nil, nil
}

// normalizeExercises force-populates the duration fields of
// duration-based exercises, so downstream progression lookups never
// see an undefined duration, unit or set count.
func normalizeExercises(record *workout.CompletedWorkout) {
	for i := range record.Exercises {
		ex := &record.Exercises[i]
		switch ex.Kind() {
		case workout.KindStrength:
			// strength fields pass through as logged
		case workout.KindDuration:
			if ex.DurationUnit == "" {
				ex.DurationUnit = workout.DurationUnitMinutes
			}
			if ex.Duration == nil {
				var d workout.FlexFloat
				if ex.ActualDuration != nil {
					d = *ex.ActualDuration
				}
				ex.Duration = &d
			}
			if ex.ActualDuration == nil {
				d := *ex.Duration
				ex.ActualDuration = &d
			}
			if ex.ActualDurationUnit == "" {
				ex.ActualDurationUnit = ex.DurationUnit
			}
			if ex.Sets == nil {
				one := workout.FlexInt(1)
				ex.Sets = &one
			}
			if ex.ActualSets == nil {
				sets := *ex.Sets
				ex.ActualSets = &sets
			}
		}
	}
}

// findByID checks the flat list first, then every date bucket
// including the legacy singular slot.
func findByID(blob *store.Blob, id string) *workout.CompletedWorkout {
	for i := range blob.Completed {
		if blob.Completed[i].ID == id {
			return &blob.Completed[i]
		}
	}
	for date, bucket := range blob.Days {
		for i := range bucket.Workouts {
			if bucket.Workouts[i].ID == id {
				w := bucket.Workouts[i]
				if w.Date == "" {
					w.Date = date
				}
				return &w
			}
		}
		if bucket.Workout != nil && bucket.Workout.ID == id {
			w := *bucket.Workout
			if w.Date == "" {
				w.Date = date
			}
			return &w
		}
	}
	return nil
}

func upsertFlat(blob *store.Blob, record workout.CompletedWorkout) {
	for i := range blob.Completed {
		if blob.Completed[i].ID == record.ID {
			blob.Completed[i] = record
			return
		}
	}
	blob.Completed = append(blob.Completed, record)
}

// upsertBucket writes the record into the date's workouts array,
// migrating a legacy singular record into the array on the way. A
// legacy record without an id gets one synthesized, unless it would
// collide with the record being written.
func upsertBucket(blob *store.Blob, date string, record workout.CompletedWorkout, now time.Time) {
	bucket := blob.EnsureDay(date)

	if bucket.Workout != nil {
		legacy := *bucket.Workout
		if legacy.ID == "" {
			legacy.ID = workout.NewID("legacy", now)
		}
		if legacy.ID != record.ID && !bucketContains(bucket, legacy.ID) {
			bucket.Workouts = append(bucket.Workouts, legacy)
			log.Debugf("workout log: migrated legacy record on %s as %s", date, legacy.ID)
		}
		bucket.Workout = nil
	}

	for i := range bucket.Workouts {
		if bucket.Workouts[i].ID == record.ID {
			bucket.Workouts[i] = record
			return
		}
	}
	bucket.Workouts = append(bucket.Workouts, record)
}

func bucketContains(bucket *store.DayBucket, id string) bool {
	for i := range bucket.Workouts {
		if bucket.Workouts[i].ID == id {
			return true
		}
	}
	return false
}

func removeFromBucket(bucket *store.DayBucket, id string) bool {
	removed := false
	kept := bucket.Workouts[:0]
	for _, w := range bucket.Workouts {
		if w.ID == id {
			removed = true
			continue
		}
		kept = append(kept, w)
	}
	bucket.Workouts = kept
	if len(bucket.Workouts) == 0 {
		bucket.Workouts = nil
	}

	if bucket.Workout != nil && bucket.Workout.ID == id {
		bucket.Workout = nil
		removed = true
	}
	return removed
}
