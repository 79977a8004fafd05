package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conorfennell/vocabdeck/internal/cardid"
	"github.com/conorfennell/vocabdeck/internal/domain"
	"github.com/conorfennell/vocabdeck/internal/parser"
	"github.com/conorfennell/vocabdeck/internal/storage"
)

var (
	importDeck string
	importName string
)

var importCmd = &cobra.Command{
	Use:   "import FILE.md...",
	Short: "Turn Q:/A: markdown notes into cards",
	Long: `Parse markdown files of Q:/A: blocks (separated by blank lines or ---)
into cards of one deck. The deck is created if missing.

Card ids are derived from the normalized front and back, so importing the
same file again adds only new notes and keeps review progress on the rest.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		found, added, err := importNotes(cmd.Context(), db, importDeck, importName, args)
		if err != nil {
			return err
		}
		color.Green("✓ Imported %d new cards into %s", added, importDeck)
		color.New(color.Faint).Printf("  %d notes found, %d already present\n", found, found-added)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importDeck, "deck", "", "deck id to import into (required)")
	importCmd.Flags().StringVar(&importName, "name", "", "deck name when the deck is created (defaults to the id)")
	importCmd.MarkFlagRequired("deck")
	rootCmd.AddCommand(importCmd)
}

// importNotes parses paths and inserts their notes as cards of deckID.
// It returns how many notes were read and how many cards were new.
func importNotes(ctx context.Context, db *storage.DB, deckID, deckName string, paths []string) (int, int, error) {
	if deckName == "" {
		deckName = deckID
	}
	if err := db.CreateDeck(ctx, deckID, deckName, ""); err != nil {
		return 0, 0, err
	}

	var cards []domain.Card
	seen := make(map[string]bool)
	for _, path := range paths {
		notes, err := parser.ParseFile(path)
		if err != nil {
			return 0, 0, fmt.Errorf("error parsing %s: %w", path, err)
		}
		for _, n := range notes {
			id := cardid.New(n.Front, n.Back)
			if seen[id] {
				continue
			}
			seen[id] = true
			cards = append(cards, domain.NewCard(id, deckID, n.Front, n.Back))
		}
	}

	added, err := db.ImportCards(ctx, cards)
	if err != nil {
		return 0, 0, err
	}
	return len(cards), added, nil
}
