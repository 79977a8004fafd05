// Package mcp exposes the reference lookups and study data as Model Context
// Protocol tools over stdio.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/conorfennell/vocabdeck/internal/domain"
)

// Store is the read-only storage the tools use.
type Store interface {
	SearchIrregularVerbs(ctx context.Context, q string) ([]domain.IrregularVerb, error)
	FindIrregularVerb(ctx context.Context, infinitive string) (*domain.IrregularVerb, error)
	SearchPhrasalVerbs(ctx context.Context, q string) ([]domain.PhrasalVerb, error)
	FindPhrasalVerb(ctx context.Context, id int64) (*domain.PhrasalVerb, error)
	ListDecks(ctx context.Context) ([]domain.Deck, error)
	FindDeck(ctx context.Context, id string) (*domain.Deck, error)
	GetCardsByDeckID(ctx context.Context, deckID string) ([]domain.Card, error)
	ListReviewStats(ctx context.Context, start, end string) ([]domain.ReviewStatsDay, error)
}

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	store     Store
}

// NewServer creates a new MCP server with the given storage.
func NewServer(store Store, version string) *Server {
	s := &Server{
		mcpServer: mcp.NewServer(&mcp.Implementation{
			Name:    "vocabdeck",
			Version: version,
		}, nil),
		store: store,
	}
	s.registerTools()
	return s
}

// Serve runs the server on stdin/stdout until ctx is done or the client
// disconnects.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
