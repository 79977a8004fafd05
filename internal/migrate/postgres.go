package migrate

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/conorfennell/vocabdeck/internal/domain"
)

// PostgresSource reads the tables straight from the hosted Postgres
// database. Timestamps and dates are cast to text so they arrive in the
// server's own ISO format.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource connects to dsn and checks the connection.
func NewPostgresSource(ctx context.Context, dsn string) (*PostgresSource, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres source: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to postgres source: %w", err)
	}
	return &PostgresSource{db: db}, nil
}

// Close releases the connection pool.
func (s *PostgresSource) Close() error {
	return s.db.Close()
}

// Decks fetches all decks by creation time.
func (s *PostgresSource) Decks(ctx context.Context) ([]domain.Deck, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id::text, name, created_at::text
		FROM decks ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query decks: %w", err)
	}
	defer rows.Close()

	var decks []domain.Deck
	for rows.Next() {
		var d domain.Deck
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deck row: %w", err)
		}
		decks = append(decks, d)
	}
	return decks, rows.Err()
}

// Cards fetches all cards by creation time with the same defaults as the
// REST source.
func (s *PostgresSource) Cards(ctx context.Context) ([]domain.Card, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id::text, deck_id::text, front, back,
		       COALESCE(ease, 2.5)::float8, COALESCE("interval", 1)::int,
		       COALESCE(reps, 0)::int, COALESCE(lapses, 0)::int,
		       grade::int, due_date::text, last_reviewed::text,
		       created_at::text, COALESCE(updated_at, created_at)::text
		FROM cards ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		var (
			c            domain.Card
			grade        sql.NullInt64
			dueDate      sql.NullString
			lastReviewed sql.NullString
		)
		err := rows.Scan(&c.ID, &c.DeckID, &c.Front, &c.Back,
			&c.Ease, &c.Interval, &c.Reps, &c.Lapses,
			&grade, &dueDate, &lastReviewed,
			&c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		if grade.Valid {
			g := int(grade.Int64)
			c.Grade = &g
		}
		if dueDate.Valid {
			c.DueDate = &dueDate.String
		}
		if lastReviewed.Valid {
			c.LastReviewed = &lastReviewed.String
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// ReviewStats fetches all day rows by day.
func (s *PostgresSource) ReviewStats(ctx context.Context) ([]domain.ReviewStatsDay, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT day::text, COALESCE(reviews, 0)::int, COALESCE(correct, 0)::int,
		       COALESCE(lapses, 0)::int, all_due_completed
		FROM review_stats ORDER BY day ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query review stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.ReviewStatsDay
	for rows.Next() {
		var (
			st   domain.ReviewStatsDay
			flag sql.NullBool
		)
		if err := rows.Scan(&st.Day, &st.Reviews, &st.Correct, &st.Lapses, &flag); err != nil {
			return nil, fmt.Errorf("failed to scan review stats row: %w", err)
		}
		if flag.Valid {
			v := flag.Bool
			st.AllDueCompleted = &v
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}
