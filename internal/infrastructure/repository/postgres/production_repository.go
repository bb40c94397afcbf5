package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fleetops/fleet-sync/internal/domain/production"
	qb "github.com/fleetops/fleet-sync/internal/platform/querybuilder"
)

type ProductionRepository struct {
	db *sqlx.DB
}

func NewProductionRepository(db *sqlx.DB) *ProductionRepository {
	return &ProductionRepository{db: db}
}

// ReplaceAll swaps the whole production snapshot inside one transaction, so
// readers either see the previous snapshot or the new one, never a mix. The
// upsert suffix covers snapshots that race with each other at the row level.
func (r *ProductionRepository) ReplaceAll(ctx context.Context, records []production.Record) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace production records: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.DeleteFrom("production_records").ToSQL()
	if err != nil {
		return fmt.Errorf("build clear production records query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear production records: %w", err)
	}

	for _, record := range records {
		insertQuery, insertArgs, err := qb.InsertInto("production_records").
			Columns("team_id", "date", "production_value").
			Values(record.TeamID, record.Date, record.Value).
			Suffix("ON CONFLICT (team_id, date) DO UPDATE SET production_value = EXCLUDED.production_value").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build insert production record query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert production record team %d date %s: %w", record.TeamID, record.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace production records: %w", err)
	}

	return nil
}
