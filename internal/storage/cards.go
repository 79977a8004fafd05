package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/conorfennell/vocabdeck/internal/domain"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (domain.Card, error) {
	var (
		c            domain.Card
		grade        sql.NullInt64
		dueDate      sql.NullString
		lastReviewed sql.NullString
	)
	err := row.Scan(
		&c.ID,
		&c.DeckID,
		&c.Front,
		&c.Back,
		&c.Ease,
		&c.Interval,
		&c.Reps,
		&c.Lapses,
		&grade,
		&dueDate,
		&lastReviewed,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return c, err
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
	return c, nil
}

func nullInt(p *int) any {
	if p == nil {
		return nil
	}
	return int64(*p)
}

func nullString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func (db *DB) listCards(ctx context.Context) ([]domain.Card, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT `+cardColumns+`
		FROM cards ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// GetCardsByDeckID returns the cards of one deck ordered by creation time.
func (db *DB) GetCardsByDeckID(ctx context.Context, deckID string) ([]domain.Card, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT `+cardColumns+`
		FROM cards WHERE deck_id = ? ORDER BY created_at
	`, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards for deck %s: %w", deckID, err)
	}
	defer rows.Close()

	cards := []domain.Card{}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card row for deck %s: %w", deckID, err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// FindCard retrieves a card by id. Returns nil if not found.
func (db *DB) FindCard(ctx context.Context, id string) (*domain.Card, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT `+cardColumns+`
		FROM cards WHERE id = ?
	`, id)
	c, err := scanCard(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Card not found
		}
		return nil, fmt.Errorf("failed to find card %s: %w", id, err)
	}
	return &c, nil
}

// SaveCard writes a card, replacing any existing card with the same id in
// full. Unlike CreateDeck this never ignores a duplicate. Empty timestamps
// are stamped with the current UTC time.
func (db *DB) SaveCard(ctx context.Context, c domain.Card) error {
	ts := timestamp()
	if c.CreatedAt == "" {
		c.CreatedAt = ts
	}
	if c.UpdatedAt == "" {
		c.UpdatedAt = ts
	}
	_, err := db.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO cards (`+cardColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		c.ID,
		c.DeckID,
		c.Front,
		c.Back,
		c.Ease,
		c.Interval,
		c.Reps,
		c.Lapses,
		nullInt(c.Grade),
		nullString(c.DueDate),
		nullString(c.LastReviewed),
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save card %s: %w", c.ID, err)
	}
	return nil
}

// UpdateCard overwrites every mutable column of the card with the given id.
// created_at is kept. An empty UpdatedAt is stamped with the current time.
// Unknown ids are ignored.
func (db *DB) UpdateCard(ctx context.Context, id string, c domain.Card) error {
	if c.UpdatedAt == "" {
		c.UpdatedAt = timestamp()
	}
	_, err := db.conn.ExecContext(ctx, `
		UPDATE cards
		SET deck_id = ?, front = ?, back = ?, ease = ?, interval = ?, reps = ?, lapses = ?,
		    grade = ?, due_date = ?, last_reviewed = ?, updated_at = ?
		WHERE id = ?
	`,
		c.DeckID,
		c.Front,
		c.Back,
		c.Ease,
		c.Interval,
		c.Reps,
		c.Lapses,
		nullInt(c.Grade),
		nullString(c.DueDate),
		nullString(c.LastReviewed),
		c.UpdatedAt,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update card %s: %w", id, err)
	}
	return nil
}

// DeleteCard removes a card by id.
func (db *DB) DeleteCard(ctx context.Context, id string) error {
	_, err := db.conn.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete card %s: %w", id, err)
	}
	return nil
}
