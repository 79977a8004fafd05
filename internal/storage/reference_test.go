package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/conorfennell/vocabdeck/internal/domain"
)

func seedIrregular(t *testing.T, db *DB) {
	t.Helper()
	verbs := []domain.IrregularVerb{
		{Infinitive: "go", SimplePast: "went", PastParticiple: "gone", Translation: "идти"},
		{Infinitive: "get", SimplePast: "got", PastParticiple: "got", Translation: "получать"},
		{Infinitive: "give", SimplePast: "gave", PastParticiple: "given", Translation: "давать"},
		{Infinitive: "begin", SimplePast: "began", PastParticiple: "begun", Translation: "начинать"},
		{Infinitive: "be_x", SimplePast: "x", PastParticiple: "x", Translation: "x"},
	}
	if _, err := db.InsertIrregularVerbs(context.Background(), verbs); err != nil {
		t.Fatalf("InsertIrregularVerbs() returned an unexpected error: %v", err)
	}
}

func TestSearchIrregularVerbs(t *testing.T) {
	db := setupTestDB(t)
	seedIrregular(t, db)
	ctx := context.Background()

	testCases := []struct {
		name string
		q    string
		want []string
	}{
		{"prefix", "g", []string{"get", "give", "go"}},
		{"case insensitive", "G", []string{"get", "give", "go"}},
		{"no substring match", "in", []string{}},
		{"empty query", "", []string{}},
		{"underscore is literal", "be_", []string{"be_x"}},
		{"percent is literal", "%", []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := db.SearchIrregularVerbs(ctx, tc.q)
			if err != nil {
				t.Fatalf("SearchIrregularVerbs(%q) returned an unexpected error: %v", tc.q, err)
			}
			if got == nil {
				t.Fatal("Expected a non-nil slice")
			}
			if len(got) != len(tc.want) {
				t.Fatalf("Expected %v, got %+v", tc.want, got)
			}
			for i, inf := range tc.want {
				if got[i].Infinitive != inf {
					t.Errorf("result %d: expected %s, got %s", i, inf, got[i].Infinitive)
				}
			}
		})
	}
}

func TestSearchIrregularVerbsLimit(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	var verbs []domain.IrregularVerb
	for i := 0; i < 15; i++ {
		verbs = append(verbs, domain.IrregularVerb{Infinitive: fmt.Sprintf("s%02d", i), SimplePast: "x", PastParticiple: "x", Translation: "x"})
	}
	db.InsertIrregularVerbs(ctx, verbs)

	got, err := db.SearchIrregularVerbs(ctx, "s")
	if err != nil {
		t.Fatalf("SearchIrregularVerbs() returned an unexpected error: %v", err)
	}
	if len(got) != SearchLimit {
		t.Fatalf("Expected %d results, got %d", SearchLimit, len(got))
	}
	if got[0].Infinitive != "s00" || got[9].Infinitive != "s09" {
		t.Errorf("Expected the first ten in order, got %s..%s", got[0].Infinitive, got[9].Infinitive)
	}
}

func TestFindIrregularVerb(t *testing.T) {
	db := setupTestDB(t)
	seedIrregular(t, db)
	ctx := context.Background()

	got, err := db.FindIrregularVerb(ctx, "go")
	if err != nil || got == nil {
		t.Fatalf("FindIrregularVerb() = %v, %v", got, err)
	}
	if got.SimplePast != "went" || got.PastParticiple != "gone" || got.Translation != "идти" {
		t.Errorf("Unexpected verb: %+v", got)
	}

	missing, err := db.FindIrregularVerb(ctx, "xyz")
	if err != nil {
		t.Fatalf("FindIrregularVerb() returned an unexpected error: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown verb, got %+v", missing)
	}
}

func TestInsertIrregularVerbsSkipsExisting(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	verbs := []domain.IrregularVerb{
		{Infinitive: "go", SimplePast: "went", PastParticiple: "gone", Translation: "идти"},
		{Infinitive: "be", SimplePast: "was", PastParticiple: "been", Translation: "быть"},
	}
	n, err := db.InsertIrregularVerbs(ctx, verbs)
	if err != nil || n != 2 {
		t.Fatalf("InsertIrregularVerbs() = %d, %v; want 2, nil", n, err)
	}
	n, err = db.InsertIrregularVerbs(ctx, verbs)
	if err != nil || n != 0 {
		t.Fatalf("second InsertIrregularVerbs() = %d, %v; want 0, nil", n, err)
	}
	if c := mustCount(t, db, TableIrregularVerbs); c != 2 {
		t.Errorf("Expected 2 verbs, got %d", c)
	}
}

func TestSearchPhrasalVerbs(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	entries := []domain.PhrasalVerb{
		{Infinitive: "look", Particle: stringPtr("up"), FullExpression: "look up", Translation: "искать", Type: "phrasal"},
		{Infinitive: "give", Particle: stringPtr("up"), FullExpression: "give up", Translation: "сдаваться", Type: "phrasal"},
		{Infinitive: "depend", Preposition: stringPtr("on"), FullExpression: "depend on", Translation: "зависеть от", Type: "prepositional"},
		{Infinitive: "pick", Particle: stringPtr("up"), Preposition: stringPtr("on"), FullExpression: "pick up on", Translation: "замечать", Type: "phrasal-prepositional"},
	}
	if n, err := db.InsertPhrasalVerbs(ctx, entries); err != nil || n != 4 {
		t.Fatalf("InsertPhrasalVerbs() = %d, %v; want 4, nil", n, err)
	}

	testCases := []struct {
		name string
		q    string
		want []string
	}{
		{"substring in expression", "up", []string{"give up", "look up", "pick up on"}},
		{"case insensitive", "UP", []string{"give up", "look up", "pick up on"}},
		{"matches infinitive", "depend", []string{"depend on"}},
		{"matches translation", "искать", []string{"look up"}},
		{"no match", "zzz", []string{}},
		{"empty query", "", []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := db.SearchPhrasalVerbs(ctx, tc.q)
			if err != nil {
				t.Fatalf("SearchPhrasalVerbs(%q) returned an unexpected error: %v", tc.q, err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("Expected %v, got %+v", tc.want, got)
			}
			for i, expr := range tc.want {
				if got[i].FullExpression != expr {
					t.Errorf("result %d: expected %q, got %q", i, expr, got[i].FullExpression)
				}
			}
		})
	}
}

func TestFindPhrasalVerb(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	db.InsertPhrasalVerbs(ctx, []domain.PhrasalVerb{
		{Infinitive: "depend", Preposition: stringPtr("on"), FullExpression: "depend on", Translation: "зависеть от", Type: "prepositional"},
	})

	hits, _ := db.SearchPhrasalVerbs(ctx, "depend")
	if len(hits) != 1 {
		t.Fatalf("Expected one hit, got %d", len(hits))
	}

	got, err := db.FindPhrasalVerb(ctx, hits[0].ID)
	if err != nil || got == nil {
		t.Fatalf("FindPhrasalVerb() = %v, %v", got, err)
	}
	if got.Particle != nil {
		t.Errorf("Expected nil particle, got %q", *got.Particle)
	}
	if got.Preposition == nil || *got.Preposition != "on" {
		t.Errorf("Expected preposition 'on', got %v", got.Preposition)
	}

	missing, err := db.FindPhrasalVerb(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("FindPhrasalVerb(9999) = %v, %v; want nil, nil", missing, err)
	}
}
