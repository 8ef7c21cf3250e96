package templates

import (
	"context"
	"fmt"
	"time"

	"github.com/mkovacevic/trainlog/internal/store"
	"github.com/mkovacevic/trainlog/internal/telemetry/tracing"
	"github.com/mkovacevic/trainlog/internal/workout"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// Creation defaults: a freshly created template is never partially
// initialized.
const (
	DefaultDuration    = 45
	minTemplateMinutes = 5
)

var defaultFrequency = []string{"monday", "wednesday", "friday"}

type recordStore interface {
	Load(ctx context.Context) (*store.Blob, error)
	Save(ctx context.Context, blob *store.Blob) error
}

// Update carries a partial template edit. Nil fields are left alone,
// set fields are shallow-merged over the stored template.
type Update struct {
	Name      *string
	Type      *workout.WorkoutType
	Duration  *workout.FlexInt
	Frequency *[]string
	Equipment *[]string
	Notes     *string
	Exercises *[]workout.ExerciseSpec
}

// Repo is the workout template repository, CRUD over the planned
// workout definitions stored under the blob's workouts list.
type Repo struct {
	store recordStore
	clock workout.Clock
}

func NewRepo(recordStore recordStore, clock workout.Clock) *Repo {
	if clock == nil {
		clock = workout.NewSystemClock()
	}
	return &Repo{
		store: recordStore,
		clock: clock,
	}
}

func (r *Repo) Create(ctx context.Context, t workout.WorkoutTemplate) (_ *workout.WorkoutTemplate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "templates.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("name", t.Name))

	blob, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load blob: %w", err)
	}

	now := r.clock.Now().UTC()
	t.ID = workout.NewID("workout", now)
	t.IsTemplate = true
	t.CreatedAt = now.Format(time.RFC3339)
	t.LastUpdated = t.CreatedAt
	if t.Type == "" {
		t.Type = workout.TypeStrength
	}
	if t.Duration < minTemplateMinutes {
		t.Duration = DefaultDuration
	}
	if t.Frequency == nil {
		t.Frequency = append([]string{}, defaultFrequency...)
	}
	if t.Equipment == nil {
		t.Equipment = []string{}
	}
	if t.Exercises == nil {
		t.Exercises = []workout.ExerciseSpec{}
	}

	blob.Templates = append(blob.Templates, t)
	if err := r.store.Save(ctx, blob); err != nil {
		return nil, fmt.Errorf("save blob: %w", err)
	}

	log.Debugf("templates: created %s (%s)", t.ID, t.Name)
	return &t, nil
}

// Update shallow-merges the given fields into the template and
// refreshes lastUpdated. Returns nil when the template is gone.
func (r *Repo) Update(ctx context.Context, id string, update Update) (_ *workout.WorkoutTemplate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "templates.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id))

	blob, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load blob: %w", err)
	}

	idx := indexOf(blob.Templates, id)
	if idx < 0 {
		return nil, nil
	}

	t := &blob.Templates[idx]
	if update.Name != nil {
		t.Name = *update.Name
	}
	if update.Type != nil {
		t.Type = *update.Type
	}
	if update.Duration != nil {
		t.Duration = *update.Duration
	}
	if update.Frequency != nil {
		t.Frequency = *update.Frequency
	}
	if update.Equipment != nil {
		t.Equipment = *update.Equipment
	}
	if update.Notes != nil {
		t.Notes = *update.Notes
	}
	if update.Exercises != nil {
		t.Exercises = *update.Exercises
	}
	t.LastUpdated = r.clock.Now().UTC().Format(time.RFC3339)

	if err := r.store.Save(ctx, blob); err != nil {
		return nil, fmt.Errorf("save blob: %w", err)
	}

	updated := *t
	log.Debugf("templates: updated %s", id)
	return &updated, nil
}

// Delete removes a template. Completed workouts referencing it keep
// their workoutId untouched - dangling references are expected.
func (r *Repo) Delete(ctx context.Context, id string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "templates.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id))

	blob, err := r.store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load blob: %w", err)
	}

	idx := indexOf(blob.Templates, id)
	if idx < 0 {
		return false, nil
	}
	blob.Templates = append(blob.Templates[:idx], blob.Templates[idx+1:]...)

	if err := r.store.Save(ctx, blob); err != nil {
		return false, fmt.Errorf("save blob: %w", err)
	}

	log.Debugf("templates: deleted %s", id)
	return true, nil
}

// GetByID returns nil (and no error) for an unknown id.
func (r *Repo) GetByID(ctx context.Context, id string) (_ *workout.WorkoutTemplate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "templates.getByID")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id))

	blob, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load blob: %w", err)
	}

	idx := indexOf(blob.Templates, id)
	if idx < 0 {
		return nil, nil
	}
	t := blob.Templates[idx]
	return &t, nil
}

func (r *Repo) GetAll(ctx context.Context) (_ []workout.WorkoutTemplate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "templates.getAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	blob, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load blob: %w", err)
	}

	if blob.Templates == nil {
		return []workout.WorkoutTemplate{}, nil
	}
	return blob.Templates, nil
}

// UpdateExerciseBaseline promotes an actual performance to become the
// template's new planned target. The exercise is matched by exact name
// (templates are authored in one session, unlike history lookups which
// match case-insensitively). Returns nil when the template or the
// exercise is not found.
//
// Override semantics differ per variant and are kept that way on
// purpose: strength fields take any logged actual value, including an
// explicitly empty weight, while the duration fields keep the current
// plan whenever the actual value is empty or zero.
func (r *Repo) UpdateExerciseBaseline(
	ctx context.Context,
	templateID, exerciseName string,
	actual workout.LoggedExercise,
) (_ *workout.WorkoutTemplate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "templates.updateExerciseBaseline")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("template_id", templateID))
	span.SetAttributes(attribute.String("exercise", exerciseName))

	current, err := r.GetByID(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		log.Debugf("templates: baseline update skipped, template %s not found", templateID)
		return nil, nil
	}

	found := false
	exercises := make([]workout.ExerciseSpec, len(current.Exercises))
	copy(exercises, current.Exercises)
	for i := range exercises {
		if exercises[i].Name != exerciseName {
			continue
		}
		found = true
		promoteBaseline(&exercises[i], actual)
	}
	if !found {
		log.Debugf("templates: baseline update skipped, exercise %q not in template %s", exerciseName, templateID)
		return nil, nil
	}

	return r.Update(ctx, templateID, Update{Exercises: &exercises})
}

func promoteBaseline(spec *workout.ExerciseSpec, actual workout.LoggedExercise) {
	switch spec.Kind() {
	case workout.KindStrength:
		if actual.ActualSets != nil {
			sets := *actual.ActualSets
			spec.Sets = &sets
		}
		if actual.ActualReps != nil {
			spec.Reps = *actual.ActualReps
		}
		if actual.ActualWeight != nil {
			// an explicitly empty actual weight is a real override
			spec.Weight = *actual.ActualWeight
		}
	case workout.KindDuration:
		if actual.ActualSets != nil && *actual.ActualSets != 0 {
			sets := *actual.ActualSets
			spec.Sets = &sets
		}
		if actual.ActualDuration != nil && *actual.ActualDuration != 0 {
			duration := *actual.ActualDuration
			spec.Duration = &duration
		}
		if actual.ActualDurationUnit != "" {
			spec.DurationUnit = actual.ActualDurationUnit
		}
		if actual.ActualDistance != "" {
			spec.Distance = actual.ActualDistance
		}
	}
}

func indexOf(templates []workout.WorkoutTemplate, id string) int {
	for i := range templates {
		if templates[i].ID == id {
			return i
		}
	}
	return -1
}
