package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iota-uz/rangepicker/pkg/blockedrange"
)

// BlockedRangeRepository loads the reservation snapshot for one session.
// A nil resourceID selects every resource; a zero from selects every range.
type BlockedRangeRepository interface {
	List(ctx context.Context, resourceID uuid.UUID, from time.Time) ([]blockedrange.Range, error)
}
