// Package migrate copies decks, cards and review stats from the hosted
// database into the local store. Rows already present locally are kept.
package migrate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/conorfennell/vocabdeck/internal/domain"
)

// Source reads every row of the three user tables, oldest first.
type Source interface {
	Decks(ctx context.Context) ([]domain.Deck, error)
	Cards(ctx context.Context) ([]domain.Card, error)
	ReviewStats(ctx context.Context) ([]domain.ReviewStatsDay, error)
}

// Target receives the rows with insert-or-ignore semantics.
type Target interface {
	ImportDecks(ctx context.Context, decks []domain.Deck) (int, error)
	ImportCards(ctx context.Context, cards []domain.Card) (int, error)
	ImportReviewStats(ctx context.Context, stats []domain.ReviewStatsDay) (int, error)
}

// TableResult counts one table's migration.
type TableResult struct {
	Table    string
	Fetched  int
	Inserted int
}

// Run migrates decks, then cards, then review stats. It stops at the first
// failure; tables finished before it stay committed.
func Run(ctx context.Context, src Source, dst Target) ([]TableResult, error) {
	var results []TableResult

	decks, err := src.Decks(ctx)
	if err != nil {
		return results, fmt.Errorf("failed to fetch decks: %w", err)
	}
	n, err := dst.ImportDecks(ctx, decks)
	if err != nil {
		return results, fmt.Errorf("failed to import decks: %w", err)
	}
	results = append(results, record("decks", len(decks), n))

	cards, err := src.Cards(ctx)
	if err != nil {
		return results, fmt.Errorf("failed to fetch cards: %w", err)
	}
	n, err = dst.ImportCards(ctx, cards)
	if err != nil {
		return results, fmt.Errorf("failed to import cards: %w", err)
	}
	results = append(results, record("cards", len(cards), n))

	stats, err := src.ReviewStats(ctx)
	if err != nil {
		return results, fmt.Errorf("failed to fetch review stats: %w", err)
	}
	n, err = dst.ImportReviewStats(ctx, stats)
	if err != nil {
		return results, fmt.Errorf("failed to import review stats: %w", err)
	}
	results = append(results, record("review_stats", len(stats), n))

	return results, nil
}

func record(table string, fetched, inserted int) TableResult {
	slog.Info("Migrated table", "table", table, "fetched", fetched, "inserted", inserted)
	return TableResult{Table: table, Fetched: fetched, Inserted: inserted}
}
