package domain

import (
	"time"

	"github.com/google/uuid"
)

// CommittedEvent is published after the host received a committed pair.
type CommittedEvent struct {
	SessionID uuid.UUID
	Selection Selection
}

// DismissedEvent carries the pair surfaced on dismiss; it may be empty.
type DismissedEvent struct {
	SessionID uuid.UUID
	Selection Selection
}

// EndClearedEvent is published when a start edit invalidated the end.
type EndClearedEvent struct {
	SessionID  uuid.UUID
	Start      time.Time
	ClearedEnd time.Time
}
