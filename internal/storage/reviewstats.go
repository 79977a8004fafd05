package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/conorfennell/vocabdeck/internal/domain"
)

func nullBool(p *bool) any {
	if p == nil {
		return nil
	}
	if *p {
		return int64(1)
	}
	return int64(0)
}

// upsertReviewStats resolves overwrite and increment semantics in a single
// statement so concurrent writers to the same day cannot lose updates.
// A missing row is always inserted with the given values (counters default
// to 0, the flag to NULL), regardless of mode.
const upsertReviewStats = `
	INSERT INTO review_stats (day, reviews, correct, lapses, all_due_completed)
	VALUES (?, COALESCE(?, 0), COALESCE(?, 0), COALESCE(?, 0), ?)
	ON CONFLICT(day) DO UPDATE SET
		reviews = CASE WHEN ? THEN review_stats.reviews + COALESCE(?, 0)
		               ELSE COALESCE(?, review_stats.reviews) END,
		correct = CASE WHEN ? THEN review_stats.correct + COALESCE(?, 0)
		               ELSE COALESCE(?, review_stats.correct) END,
		lapses = CASE WHEN ? THEN review_stats.lapses + COALESCE(?, 0)
		              ELSE COALESCE(?, review_stats.lapses) END,
		all_due_completed = COALESCE(?, review_stats.all_due_completed)
`

// UpsertReviewStats applies one write to a day's aggregate row.
func (db *DB) UpsertReviewStats(ctx context.Context, u domain.ReviewStatsUpdate) error {
	var inc int64
	if u.Increment {
		inc = 1
	}
	reviews, correct, lapses := nullInt(u.Reviews), nullInt(u.Correct), nullInt(u.Lapses)
	flag := nullBool(u.AllDueCompleted)

	_, err := db.conn.ExecContext(ctx, upsertReviewStats,
		u.Day, reviews, correct, lapses, flag,
		inc, reviews, reviews,
		inc, correct, correct,
		inc, lapses, lapses,
		flag,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert review stats for %s: %w", u.Day, err)
	}
	return nil
}

// ListReviewStats returns day rows within [start, end], newest first.
// Empty bounds are open.
func (db *DB) ListReviewStats(ctx context.Context, start, end string) ([]domain.ReviewStatsDay, error) {
	query := `SELECT day, reviews, correct, lapses, all_due_completed FROM review_stats`
	var (
		clauses []string
		args    []any
	)
	if start != "" {
		clauses = append(clauses, "day >= ?")
		args = append(args, start)
	}
	if end != "" {
		clauses = append(clauses, "day <= ?")
		args = append(args, end)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY day DESC"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list review stats: %w", err)
	}
	defer rows.Close()

	stats := []domain.ReviewStatsDay{}
	for rows.Next() {
		s, err := scanReviewStats(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review stats row: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// FindReviewStats retrieves the row for a single day. Returns nil if not found.
func (db *DB) FindReviewStats(ctx context.Context, day string) (*domain.ReviewStatsDay, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT day, reviews, correct, lapses, all_due_completed
		FROM review_stats WHERE day = ?
	`, day)
	s, err := scanReviewStats(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find review stats for %s: %w", day, err)
	}
	return &s, nil
}

func scanReviewStats(row rowScanner) (domain.ReviewStatsDay, error) {
	var (
		s    domain.ReviewStatsDay
		flag sql.NullInt64
	)
	if err := row.Scan(&s.Day, &s.Reviews, &s.Correct, &s.Lapses, &flag); err != nil {
		return s, err
	}
	if flag.Valid {
		v := flag.Int64 != 0
		s.AllDueCompleted = &v
	}
	return s, nil
}
