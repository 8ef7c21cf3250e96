package trainlog_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	trainlog "github.com/mkovacevic/trainlog"
	"github.com/mkovacevic/trainlog/internal/store"
	"github.com/mkovacevic/trainlog/internal/workout"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func flexIntPtr(v workout.FlexInt) *workout.FlexInt { return &v }
func flexStrPtr(v workout.FlexString) *workout.FlexString { return &v }

func TestNew_RequiresStore(t *testing.T) {
	_, err := trainlog.New(trainlog.Options{})
	require.ErrorIs(t, err, trainlog.ErrNoStore)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	dataPath := filepath.Join(dir, "data.json")

	configToml := fmt.Sprintf(`
[development]
data_file_path = %q
log_level = "debug"
log_to_stdout = true
history_limit = 5
`, dataPath)
	require.NoError(t, os.WriteFile(configPath, []byte(configToml), 0o644))

	tracker, err := trainlog.Open("dev", configPath)
	require.NoError(t, err)
	require.NotNil(t, tracker)

	ctx := context.Background()
	created, err := tracker.Templates.Create(ctx, workout.WorkoutTemplate{Name: "Push Day"})
	require.NoError(t, err)

	found, err := tracker.Templates.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)

	_, err = trainlog.Open("dev", filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
}

// The whole progression loop in one place: plan a workout, perform it
// heavier than planned, read the record, promote the baseline, and keep
// the history usable after the template is gone.
func TestTracker_ProgressionLoop(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)

	tracker, err := trainlog.New(trainlog.Options{
		Store: store.NewInMemory(),
		Clock: fixedClock{now: now},
	})
	require.NoError(t, err)

	legDay, err := tracker.Templates.Create(ctx, workout.WorkoutTemplate{
		Name: "Leg Day",
		Exercises: []workout.ExerciseSpec{
			{Name: "Squat", Sets: flexIntPtr(3), Reps: "5", Weight: "100"},
		},
	})
	require.NoError(t, err)

	completed, err := tracker.Workouts.LogWorkout(ctx, "2025-03-10", workout.CompletedWorkout{
		Name:      "Leg Day",
		WorkoutID: legDay.ID,
		Exercises: []workout.LoggedExercise{
			{
				ExerciseSpec: legDay.Exercises[0],
				ActualWeight: flexStrPtr("105"),
			},
		},
	}, "")
	require.NoError(t, err)

	records, err := tracker.Progression.PersonalRecords(ctx)
	require.NoError(t, err)
	require.NotNil(t, records["squat"])
	assert.Equal(t, 105.0, records["squat"].MaxWeight.Value)
	assert.Equal(t, "2025-03-10", records["squat"].MaxWeight.Date)

	history, err := tracker.ExerciseProgressionHistory(ctx, "squat")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 105.0, history[0].Weight)

	promoted, err := tracker.Templates.UpdateExerciseBaseline(
		ctx, legDay.ID, "Squat", completed.Exercises[0])
	require.NoError(t, err)
	require.NotNil(t, promoted)
	assert.Equal(t, workout.FlexString("105"), promoted.Exercises[0].Weight)

	// deleting the template leaves the logged history fully usable
	removed, err := tracker.Templates.Delete(ctx, legDay.ID)
	require.NoError(t, err)
	require.True(t, removed)

	records, err = tracker.Progression.PersonalRecords(ctx)
	require.NoError(t, err)
	require.NotNil(t, records["squat"])
	assert.Equal(t, 105.0, records["squat"].MaxWeight.Value)

	previous, err := tracker.Progression.PreviousExercisePerformance(ctx, "SQUAT", "")
	require.NoError(t, err)
	require.NotNil(t, previous)
	assert.Equal(t, completed.ID, previous.CompletedWorkoutID)
}
