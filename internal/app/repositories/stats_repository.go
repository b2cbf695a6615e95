package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// StatsRepository reads table-level counts for the dashboard
type StatsRepository struct {
	db *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

const countsQuery = `
	SELECT
		(SELECT COUNT(*) FROM groups),
		(SELECT COUNT(*) FROM forum_threads),
		(SELECT COUNT(*) FROM forum_replies)`

// Counts returns the number of groups, threads and replies in one round trip
func (r *StatsRepository) Counts(ctx context.Context) (TableCounts, error) {
	var c TableCounts
	if err := r.db.QueryRow(ctx, countsQuery).Scan(&c.Groups, &c.Threads, &c.Replies); err != nil {
		return TableCounts{}, fmt.Errorf("error counting rows: %w", err)
	}
	return c, nil
}
