package workout

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewID builds record ids like "completed-1704067200123-1a2b3c4d".
// The millisecond timestamp keeps ids roughly sortable and readable,
// the uuid suffix keeps rapid back-to-back calls from colliding.
func NewID(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), uuid.NewString()[:8])
}
