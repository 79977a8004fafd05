package storage

import (
	"context"
	"testing"
	"time"

	"github.com/conorfennell/vocabdeck/internal/domain"
)

func TestCreateDeckAndList(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.CreateDeck(ctx, "d2", "Second", "2024-01-02T00:00:00.000000"); err != nil {
		t.Fatalf("CreateDeck() returned an unexpected error: %v", err)
	}
	if err := db.CreateDeck(ctx, "d1", "First", "2024-01-01T00:00:00.000000"); err != nil {
		t.Fatalf("CreateDeck() returned an unexpected error: %v", err)
	}

	decks, err := db.ListDecks(ctx)
	if err != nil {
		t.Fatalf("ListDecks() returned an unexpected error: %v", err)
	}
	if len(decks) != 2 {
		t.Fatalf("Expected 2 decks, got %d", len(decks))
	}
	if decks[0].ID != "d1" || decks[1].ID != "d2" {
		t.Errorf("Expected decks ordered by created_at, got %s, %s", decks[0].ID, decks[1].ID)
	}
	for _, d := range decks {
		if d.Cards == nil || len(d.Cards) != 0 {
			t.Errorf("Expected deck %s to carry an empty card list, got %v", d.ID, d.Cards)
		}
	}
}

func TestCreateDeckStampsCreatedAt(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	fixed := time.Date(2025, 3, 4, 5, 6, 7, 8000, time.UTC)
	orig := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = orig })

	if err := db.CreateDeck(ctx, "d1", "Verbs", ""); err != nil {
		t.Fatalf("CreateDeck() returned an unexpected error: %v", err)
	}
	deck, err := db.FindDeck(ctx, "d1")
	if err != nil || deck == nil {
		t.Fatalf("FindDeck() = %v, %v", deck, err)
	}
	if deck.CreatedAt != "2025-03-04T05:06:07.000008" {
		t.Errorf("Expected created_at to be stamped, got %q", deck.CreatedAt)
	}
}

func TestCreateDeckIgnoresDuplicateID(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.CreateDeck(ctx, "d1", "Original", ""); err != nil {
		t.Fatalf("CreateDeck() returned an unexpected error: %v", err)
	}
	if err := db.CreateDeck(ctx, "d1", "Replacement", ""); err != nil {
		t.Fatalf("duplicate CreateDeck() should be a no-op, got error: %v", err)
	}

	deck, err := db.FindDeck(ctx, "d1")
	if err != nil {
		t.Fatalf("FindDeck() returned an unexpected error: %v", err)
	}
	if deck.Name != "Original" {
		t.Errorf("Expected name to stay 'Original', got %q", deck.Name)
	}
}

func TestUpdateDeck(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.CreateDeck(ctx, "d1", "Verbs", ""); err != nil {
		t.Fatalf("CreateDeck() returned an unexpected error: %v", err)
	}
	if err := db.UpdateDeck(ctx, "d1", "Irregular verbs"); err != nil {
		t.Fatalf("UpdateDeck() returned an unexpected error: %v", err)
	}
	if err := db.UpdateDeck(ctx, "missing", "Nothing"); err != nil {
		t.Fatalf("UpdateDeck() on a missing id should be a no-op, got error: %v", err)
	}

	deck, _ := db.FindDeck(ctx, "d1")
	if deck.Name != "Irregular verbs" {
		t.Errorf("Expected renamed deck, got %q", deck.Name)
	}
	if missing, _ := db.FindDeck(ctx, "missing"); missing != nil {
		t.Error("Expected UpdateDeck not to create a deck")
	}
}

func TestDeleteDeckCascadesToCards(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.CreateDeck(ctx, "d1", "Verbs", ""); err != nil {
		t.Fatalf("CreateDeck() returned an unexpected error: %v", err)
	}
	if err := db.CreateDeck(ctx, "d2", "Nouns", ""); err != nil {
		t.Fatalf("CreateDeck() returned an unexpected error: %v", err)
	}
	for _, c := range []domain.Card{
		domain.NewCard("c1", "d1", "run", "run, ran, run"),
		domain.NewCard("c2", "d1", "go", "go, went, gone"),
		domain.NewCard("c3", "d2", "cat", "кот"),
	} {
		if err := db.SaveCard(ctx, c); err != nil {
			t.Fatalf("SaveCard(%s) returned an unexpected error: %v", c.ID, err)
		}
	}

	if err := db.DeleteDeck(ctx, "d1"); err != nil {
		t.Fatalf("DeleteDeck() returned an unexpected error: %v", err)
	}

	cards, err := db.GetCardsByDeckID(ctx, "d1")
	if err != nil {
		t.Fatalf("GetCardsByDeckID() returned an unexpected error: %v", err)
	}
	if len(cards) != 0 {
		t.Errorf("Expected cards of deleted deck to be gone, got %d", len(cards))
	}
	if n := mustCount(t, db, TableCards); n != 1 {
		t.Errorf("Expected only the other deck's card to remain, got %d cards", n)
	}
}

func TestListDecksNestsCardsInOrder(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	db.CreateDeck(ctx, "d1", "Verbs", "2024-01-01T00:00:00.000000")
	db.CreateDeck(ctx, "d2", "Nouns", "2024-01-02T00:00:00.000000")

	cards := []domain.Card{
		{ID: "late", DeckID: "d1", Front: "b", Back: "b", Ease: 2.5, Interval: 1, CreatedAt: "2024-02-03T00:00:00.000000"},
		{ID: "early", DeckID: "d1", Front: "a", Back: "a", Ease: 2.5, Interval: 1, CreatedAt: "2024-02-01T00:00:00.000000"},
		{ID: "noun", DeckID: "d2", Front: "c", Back: "c", Ease: 2.5, Interval: 1, CreatedAt: "2024-02-02T00:00:00.000000"},
	}
	for _, c := range cards {
		if err := db.SaveCard(ctx, c); err != nil {
			t.Fatalf("SaveCard(%s) returned an unexpected error: %v", c.ID, err)
		}
	}

	decks, err := db.ListDecks(ctx)
	if err != nil {
		t.Fatalf("ListDecks() returned an unexpected error: %v", err)
	}
	if len(decks[0].Cards) != 2 || decks[0].Cards[0].ID != "early" || decks[0].Cards[1].ID != "late" {
		t.Errorf("Expected d1 cards [early late], got %+v", decks[0].Cards)
	}
	if len(decks[1].Cards) != 1 || decks[1].Cards[0].ID != "noun" {
		t.Errorf("Expected d2 cards [noun], got %+v", decks[1].Cards)
	}
}
