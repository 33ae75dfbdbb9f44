package viz

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// artifactName builds a chart filename from the kind prefix, a
// second-granularity timestamp, and a random suffix. The suffix keeps
// two charts of the same kind rendered within the same second from
// colliding.
func artifactName(kind Kind, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s.png", kind, now.Format("20060102_150405"), uuid.NewString()[:8])
}
