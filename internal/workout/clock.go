package workout

import "time"

// Clock provides the current time for dating new records. Injected
// everywhere instead of calling time.Now directly, so streaks and
// record timestamps are testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func NewSystemClock() Clock {
	return systemClock{}
}
