package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/conorfennell/vocabdeck/internal/domain"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "search_irregular_verbs",
		Description: "Find irregular verbs whose infinitive starts with a prefix (max 10)",
	}, s.handleSearchIrregularVerbs)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_irregular_verb",
		Description: "Get the forms and translation of one irregular verb",
	}, s.handleGetIrregularVerb)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "search_phrasal_verbs",
		Description: "Find verb governance patterns containing a word in the verb, expression or translation (max 10)",
	}, s.handleSearchPhrasalVerbs)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_phrasal_verb",
		Description: "Get one verb governance pattern by id",
	}, s.handleGetPhrasalVerb)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_decks",
		Description: "List flashcard decks with their card counts",
	}, s.handleListDecks)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_deck_cards",
		Description: "Get the cards of one deck, oldest first, with their scheduling fields",
	}, s.handleGetDeckCards)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_review_stats",
		Description: "Get daily review counters, newest first, optionally limited to a date range",
	}, s.handleGetReviewStats)
}

// Tool input/output types

type searchInput struct {
	Query string `json:"query" jsonschema:"the text to search for"`
}

type irregularVerbsOutput struct {
	Verbs []domain.IrregularVerb `json:"verbs"`
}

type getIrregularVerbInput struct {
	Infinitive string `json:"infinitive" jsonschema:"the exact infinitive, e.g. go"`
}

type phrasalVerbsOutput struct {
	Verbs []domain.PhrasalVerb `json:"verbs"`
}

type getPhrasalVerbInput struct {
	ID int64 `json:"id" jsonschema:"the pattern id from search_phrasal_verbs"`
}

type listDecksInput struct{}

type deckSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	Cards     int    `json:"cards"`
}

type listDecksOutput struct {
	Decks []deckSummary `json:"decks"`
}

type deckCardsInput struct {
	DeckID string `json:"deck_id" jsonschema:"the deck id from list_decks"`
}

type deckCardsOutput struct {
	Cards []domain.Card `json:"cards"`
}

type reviewStatsInput struct {
	Start string `json:"start,omitempty" jsonschema:"first day to include, YYYY-MM-DD"`
	End   string `json:"end,omitempty" jsonschema:"last day to include, YYYY-MM-DD"`
}

type reviewStatsOutput struct {
	Days []domain.ReviewStatsDay `json:"days"`
}

// Tool handlers

func (s *Server) handleSearchIrregularVerbs(ctx context.Context, req *mcp.CallToolRequest, input searchInput) (*mcp.CallToolResult, irregularVerbsOutput, error) {
	verbs, err := s.store.SearchIrregularVerbs(ctx, input.Query)
	if err != nil {
		return nil, irregularVerbsOutput{}, err
	}
	return nil, irregularVerbsOutput{Verbs: verbs}, nil
}

func (s *Server) handleGetIrregularVerb(ctx context.Context, req *mcp.CallToolRequest, input getIrregularVerbInput) (*mcp.CallToolResult, domain.IrregularVerb, error) {
	verb, err := s.store.FindIrregularVerb(ctx, input.Infinitive)
	if err != nil {
		return nil, domain.IrregularVerb{}, err
	}
	if verb == nil {
		return nil, domain.IrregularVerb{}, fmt.Errorf("irregular verb not found: %s", input.Infinitive)
	}
	return nil, *verb, nil
}

func (s *Server) handleSearchPhrasalVerbs(ctx context.Context, req *mcp.CallToolRequest, input searchInput) (*mcp.CallToolResult, phrasalVerbsOutput, error) {
	verbs, err := s.store.SearchPhrasalVerbs(ctx, input.Query)
	if err != nil {
		return nil, phrasalVerbsOutput{}, err
	}
	return nil, phrasalVerbsOutput{Verbs: verbs}, nil
}

func (s *Server) handleGetPhrasalVerb(ctx context.Context, req *mcp.CallToolRequest, input getPhrasalVerbInput) (*mcp.CallToolResult, domain.PhrasalVerb, error) {
	verb, err := s.store.FindPhrasalVerb(ctx, input.ID)
	if err != nil {
		return nil, domain.PhrasalVerb{}, err
	}
	if verb == nil {
		return nil, domain.PhrasalVerb{}, fmt.Errorf("phrasal verb not found: %d", input.ID)
	}
	return nil, *verb, nil
}

func (s *Server) handleListDecks(ctx context.Context, req *mcp.CallToolRequest, input listDecksInput) (*mcp.CallToolResult, listDecksOutput, error) {
	decks, err := s.store.ListDecks(ctx)
	if err != nil {
		return nil, listDecksOutput{}, err
	}
	out := listDecksOutput{Decks: make([]deckSummary, 0, len(decks))}
	for _, d := range decks {
		out.Decks = append(out.Decks, deckSummary{
			ID:        d.ID,
			Name:      d.Name,
			CreatedAt: d.CreatedAt,
			Cards:     len(d.Cards),
		})
	}
	return nil, out, nil
}

func (s *Server) handleGetDeckCards(ctx context.Context, req *mcp.CallToolRequest, input deckCardsInput) (*mcp.CallToolResult, deckCardsOutput, error) {
	deck, err := s.store.FindDeck(ctx, input.DeckID)
	if err != nil {
		return nil, deckCardsOutput{}, err
	}
	if deck == nil {
		return nil, deckCardsOutput{}, fmt.Errorf("deck not found: %s", input.DeckID)
	}
	cards, err := s.store.GetCardsByDeckID(ctx, input.DeckID)
	if err != nil {
		return nil, deckCardsOutput{}, err
	}
	return nil, deckCardsOutput{Cards: cards}, nil
}

func (s *Server) handleGetReviewStats(ctx context.Context, req *mcp.CallToolRequest, input reviewStatsInput) (*mcp.CallToolResult, reviewStatsOutput, error) {
	days, err := s.store.ListReviewStats(ctx, input.Start, input.End)
	if err != nil {
		return nil, reviewStatsOutput{}, err
	}
	return nil, reviewStatsOutput{Days: days}, nil
}
