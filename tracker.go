package trainlog

import (
	"context"
	"errors"

	"github.com/mkovacevic/trainlog/internal/config"
	"github.com/mkovacevic/trainlog/internal/logging"
	"github.com/mkovacevic/trainlog/internal/store"
	"github.com/mkovacevic/trainlog/internal/workout"
	"github.com/mkovacevic/trainlog/internal/workout/progression"
	"github.com/mkovacevic/trainlog/internal/workout/sessions"
	"github.com/mkovacevic/trainlog/internal/workout/templates"

	log "github.com/sirupsen/logrus"
)

var ErrNoStore = errors.New("record store must be provided")

// Tracker is the embedder's entry point: the template repository, the
// completed workout log and the progression engine, all sharing one
// record store.
type Tracker struct {
	Templates   *templates.Repo
	Workouts    *sessions.Service
	Progression *progression.Analyzer

	historyLimit int
}

// Options configures a Tracker. Only Store is mandatory; Clock and
// Notifier default to the system clock and a no-op notifier.
type Options struct {
	Store        store.Store
	Clock        workout.Clock
	Notifier     sessions.ChangeNotifier
	HistoryLimit int
}

func New(opts Options) (*Tracker, error) {
	if opts.Store == nil {
		return nil, ErrNoStore
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = config.DefaultHistoryLimit
	}

	workoutLog := sessions.NewService(opts.Store, opts.Clock, opts.Notifier)
	return &Tracker{
		Templates:    templates.NewRepo(opts.Store, opts.Clock),
		Workouts:     workoutLog,
		Progression:  progression.NewAnalyzer(workoutLog, opts.Clock),
		historyLimit: opts.HistoryLimit,
	}, nil
}

// Open loads the TOML config for the given env, sets up logging per the
// config, and returns a Tracker over the configured data file.
func Open(env, configPath string) (*Tracker, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, err
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName: cfg.LogsPath,
		LogToStdout: cfg.LogToStdout,
		LogLevel:    cfg.LogLevel,
	})

	fileStore, err := store.NewFileStore(cfg.DataFilePath)
	if err != nil {
		return nil, err
	}

	log.Debugf("tracker: opened with data file %s", cfg.DataFilePath)
	return New(Options{
		Store:        fileStore,
		HistoryLimit: cfg.HistoryLimit,
	})
}

// ExerciseProgressionHistory is ExerciseProgressionHistory on the
// progression engine with the configured history limit applied.
func (t *Tracker) ExerciseProgressionHistory(
	ctx context.Context,
	exerciseName string,
) ([]progression.HistoryEntry, error) {
	return t.Progression.ExerciseProgressionHistory(ctx, exerciseName, t.historyLimit)
}
