package coordinator

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session is one dictation attempt from toggle-on to final delivery (or
// failure). At most one exists process-wide.
type Session struct {
	// ID identifies the session in logs.
	ID uuid.UUID
	// TargetTabID is the tab that receives the transcript.
	TargetTabID int
	// StartedAt is when recording began.
	StartedAt time.Time
}

func newSession(tabID int) *Session {
	return &Session{
		ID:          uuid.New(),
		TargetTabID: tabID,
		StartedAt:   time.Now(),
	}
}

// Target returns the bus address of the session's page context.
func (s *Session) Target() string {
	return PageTarget(s.TargetTabID)
}

// PageTarget returns the bus address for a tab's page context.
func PageTarget(tabID int) string {
	return fmt.Sprintf("page:%d", tabID)
}
