package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/conorfennell/vocabdeck/internal/domain"
)

// The Import* methods copy records from an external source. Rows whose key
// already exists are skipped, so an import can be re-run safely. Each call
// runs in one transaction and returns the number of rows added.

// ImportDecks inserts decks, ignoring ids that already exist.
func (db *DB) ImportDecks(ctx context.Context, decks []domain.Deck) (int, error) {
	return db.importRows(ctx, `
		INSERT OR IGNORE INTO decks (id, name, created_at)
		VALUES (?, ?, ?)
	`, len(decks), func(i int) []any {
		d := decks[i]
		if d.CreatedAt == "" {
			d.CreatedAt = timestamp()
		}
		return []any{d.ID, d.Name, d.CreatedAt}
	})
}

// ImportCards inserts cards, ignoring ids that already exist. Existing cards
// keep their scheduling state.
func (db *DB) ImportCards(ctx context.Context, cards []domain.Card) (int, error) {
	return db.importRows(ctx, `
		INSERT OR IGNORE INTO cards (`+cardColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, len(cards), func(i int) []any {
		c := cards[i]
		if c.CreatedAt == "" {
			c.CreatedAt = timestamp()
		}
		if c.UpdatedAt == "" {
			c.UpdatedAt = c.CreatedAt
		}
		return []any{
			c.ID, c.DeckID, c.Front, c.Back,
			c.Ease, c.Interval, c.Reps, c.Lapses,
			nullInt(c.Grade), nullString(c.DueDate), nullString(c.LastReviewed),
			c.CreatedAt, c.UpdatedAt,
		}
	})
}

// ImportReviewStats inserts day rows, ignoring days that already exist.
func (db *DB) ImportReviewStats(ctx context.Context, stats []domain.ReviewStatsDay) (int, error) {
	return db.importRows(ctx, `
		INSERT OR IGNORE INTO review_stats (day, reviews, correct, lapses, all_due_completed)
		VALUES (?, ?, ?, ?, ?)
	`, len(stats), func(i int) []any {
		s := stats[i]
		return []any{s.Day, s.Reviews, s.Correct, s.Lapses, nullBool(s.AllDueCompleted)}
	})
}

func (db *DB) importRows(ctx context.Context, query string, n int, args func(int) []any) (int, error) {
	var added int
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare import: %w", err)
		}
		defer stmt.Close()

		for i := 0; i < n; i++ {
			res, err := stmt.ExecContext(ctx, args(i)...)
			if err != nil {
				return fmt.Errorf("failed to import row %d: %w", i, err)
			}
			affected, _ := res.RowsAffected()
			added += int(affected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}
