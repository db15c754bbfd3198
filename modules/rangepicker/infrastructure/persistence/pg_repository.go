package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iota-uz/rangepicker/modules/rangepicker/domain"
	"github.com/iota-uz/rangepicker/pkg/blockedrange"
	"github.com/iota-uz/rangepicker/pkg/composables"
)

// PgBlockedRangeRepository reads reservations through the transaction or
// pool carried in the context.
type PgBlockedRangeRepository struct {
	table string
}

var _ domain.BlockedRangeRepository = (*PgBlockedRangeRepository)(nil)

func NewPgBlockedRangeRepository(table string) *PgBlockedRangeRepository {
	if table == "" {
		table = "reservations"
	}
	return &PgBlockedRangeRepository{table: table}
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: id != uuid.Nil}
}

func asTime(v pgtype.Timestamptz) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	return v.Time
}

func (r *PgBlockedRangeRepository) tableIdent() string {
	return pgx.Identifier(strings.Split(r.table, ".")).Sanitize()
}

func (r *PgBlockedRangeRepository) List(ctx context.Context, resourceID uuid.UUID, from time.Time) ([]blockedrange.Range, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var fromArg pgtype.Timestamptz
	if !from.IsZero() {
		fromArg = pgtype.Timestamptz{Time: from, Valid: true}
	}
	rows, err := tx.Query(ctx, `
		SELECT starts_at, ends_at
		FROM `+r.tableIdent()+`
		WHERE ($1::uuid IS NULL OR resource_id = $1)
		  AND ($2::timestamptz IS NULL OR ends_at >= $2)
		ORDER BY starts_at, ends_at
	`, pgUUID(resourceID), fromArg)
	if err != nil {
		return nil, errors.Wrap(err, "query reservations")
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (blockedrange.Range, error) {
		var start, end pgtype.Timestamptz
		if err := row.Scan(&start, &end); err != nil {
			return blockedrange.Range{}, err
		}
		return blockedrange.Range{Start: asTime(start), End: asTime(end)}, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "scan reservations")
	}
	return out, nil
}
