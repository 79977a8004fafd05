package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/conorfennell/vocabdeck/internal/domain"
)

const cardColumns = `id, deck_id, front, back, ease, interval, reps, lapses,
	grade, due_date, last_reviewed, created_at, updated_at`

// ListDecks returns every deck ordered by creation time, each carrying its
// cards ordered by creation time. Cards are fetched in one query and grouped
// in memory rather than queried per deck.
func (db *DB) ListDecks(ctx context.Context) ([]domain.Deck, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, name, created_at
		FROM decks ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer rows.Close()

	decks := []domain.Deck{}
	index := make(map[string]int)
	for rows.Next() {
		var d domain.Deck
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deck row: %w", err)
		}
		d.Cards = []domain.Card{}
		index[d.ID] = len(decks)
		decks = append(decks, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate decks: %w", err)
	}

	cards, err := db.listCards(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range cards {
		if i, ok := index[c.DeckID]; ok {
			decks[i].Cards = append(decks[i].Cards, c)
		}
	}
	return decks, nil
}

// CreateDeck inserts a deck. An existing id is left untouched. An empty
// createdAt is stamped with the current UTC time.
func (db *DB) CreateDeck(ctx context.Context, id, name, createdAt string) error {
	if createdAt == "" {
		createdAt = timestamp()
	}
	_, err := db.conn.ExecContext(ctx, `
		INSERT OR IGNORE INTO decks (id, name, created_at)
		VALUES (?, ?, ?)
	`, id, name, createdAt)
	if err != nil {
		return fmt.Errorf("failed to create deck %s: %w", id, err)
	}
	return nil
}

// UpdateDeck renames a deck. Unknown ids are ignored.
func (db *DB) UpdateDeck(ctx context.Context, id, name string) error {
	_, err := db.conn.ExecContext(ctx, `UPDATE decks SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("failed to update deck %s: %w", id, err)
	}
	return nil
}

// DeleteDeck removes a deck; its cards go with it via ON DELETE CASCADE.
func (db *DB) DeleteDeck(ctx context.Context, id string) error {
	_, err := db.conn.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deck %s: %w", id, err)
	}
	return nil
}

// FindDeck retrieves a deck without its cards. Returns nil if not found.
func (db *DB) FindDeck(ctx context.Context, id string) (*domain.Deck, error) {
	var d domain.Deck
	err := db.conn.QueryRowContext(ctx, `
		SELECT id, name, created_at FROM decks WHERE id = ?
	`, id).Scan(&d.ID, &d.Name, &d.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Deck not found
		}
		return nil, fmt.Errorf("failed to find deck %s: %w", id, err)
	}
	return &d, nil
}
