package workout_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkovacevic/trainlog/internal/workout"
)

func TestCompletedWorkout_OrderingTime(t *testing.T) {
	completedAt := "2025-03-10T18:30:00Z"
	timestamp := "2025-03-09T07:00:00Z"

	tests := []struct {
		name string
		w    workout.CompletedWorkout
		want time.Time
	}{
		{
			name: "completedAt wins",
			w: workout.CompletedWorkout{
				Date:        "2025-03-08",
				CompletedAt: completedAt,
				Timestamp:   timestamp,
			},
			want: time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC),
		},
		{
			name: "timestamp when no completedAt",
			w: workout.CompletedWorkout{
				Date:      "2025-03-08",
				Timestamp: timestamp,
			},
			want: time.Date(2025, 3, 9, 7, 0, 0, 0, time.UTC),
		},
		{
			name: "calendar date as last resort",
			w: workout.CompletedWorkout{
				Date: "2025-03-08",
			},
			want: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "unparsable completedAt falls through",
			w: workout.CompletedWorkout{
				Date:        "2025-03-08",
				CompletedAt: "yesterday evening",
			},
			want: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "nothing usable",
			w:    workout.CompletedWorkout{},
			want: time.Time{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(tt.w.OrderingTime()))
		})
	}
}

func TestCompletedWorkout_CalendarDate(t *testing.T) {
	w := workout.CompletedWorkout{Date: "2025-03-08"}
	assert.Equal(t, "2025-03-08", w.CalendarDate())

	w = workout.CompletedWorkout{CompletedAt: "2025-03-10T18:30:00Z"}
	assert.Equal(t, "2025-03-10", w.CalendarDate())

	assert.Empty(t, workout.CompletedWorkout{}.CalendarDate())
}

func TestCompletedWorkout_IntensityLevel(t *testing.T) {
	w := workout.CompletedWorkout{Intensity: "4"}
	level, ok := w.IntensityLevel()
	require.True(t, ok)
	assert.Equal(t, 4, level)

	w = workout.CompletedWorkout{Intensity: "challenging"}
	level, ok = w.IntensityLevel()
	require.True(t, ok)
	assert.Equal(t, 3, level)

	_, ok = workout.CompletedWorkout{}.IntensityLevel()
	assert.False(t, ok)
}
