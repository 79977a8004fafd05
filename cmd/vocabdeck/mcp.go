package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/conorfennell/vocabdeck/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server on stdin/stdout so an AI
assistant can look up verbs and read study data.

AVAILABLE TOOLS:

  search_irregular_verbs  Irregular verbs by infinitive prefix
  get_irregular_verb      Forms and translation of one verb
  search_phrasal_verbs    Verb governance patterns by substring
  get_phrasal_verb        One pattern by id
  list_decks              Decks with card counts
  get_deck_cards          Cards of one deck, oldest first
  get_review_stats        Daily review counters`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		return mcp.NewServer(db, version).Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
