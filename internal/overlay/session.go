package overlay

import (
	"time"

	"github.com/google/uuid"

	"selector-inspector/internal/entity"
)

// Session is the overlay state of one injected page session. It is owned
// by exactly one Controller and replaced when the document is torn down.
type Session struct {
	ID        uuid.UUID
	StartedAt time.Time
	state     State
}

func NewSession() *Session {
	return &Session{
		ID:        uuid.New(),
		StartedAt: time.Now(),
	}
}

func (s *Session) Info() entity.SessionInfo {
	return entity.SessionInfo{
		ID:          s.ID,
		StartedAt:   s.StartedAt,
		Highlighted: s.state.Phase == PhaseHighlighting,
		Text:        s.state.Text,
	}
}
