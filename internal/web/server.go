package web

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/conorfennell/vocabdeck/internal/domain"
	"github.com/conorfennell/vocabdeck/internal/seed"
)

//go:embed all:static
var staticFiles embed.FS

// Store is the persistence the HTTP API needs.
type Store interface {
	ListDecks(ctx context.Context) ([]domain.Deck, error)
	CreateDeck(ctx context.Context, id, name, createdAt string) error
	UpdateDeck(ctx context.Context, id, name string) error
	DeleteDeck(ctx context.Context, id string) error

	SaveCard(ctx context.Context, c domain.Card) error
	UpdateCard(ctx context.Context, id string, c domain.Card) error
	DeleteCard(ctx context.Context, id string) error

	UpsertReviewStats(ctx context.Context, u domain.ReviewStatsUpdate) error
	ListReviewStats(ctx context.Context, start, end string) ([]domain.ReviewStatsDay, error)

	SearchIrregularVerbs(ctx context.Context, q string) ([]domain.IrregularVerb, error)
	FindIrregularVerb(ctx context.Context, infinitive string) (*domain.IrregularVerb, error)
	SearchPhrasalVerbs(ctx context.Context, q string) ([]domain.PhrasalVerb, error)
	FindPhrasalVerb(ctx context.Context, id int64) (*domain.PhrasalVerb, error)

	Count(ctx context.Context, table string) (int, error)
}

// Seeder fills the reference tables on demand.
type Seeder interface {
	Seed(ctx context.Context) (seed.Result, error)
}

// Options tune a Server.
type Options struct {
	// StaticDir serves the front end from disk. When empty the embedded
	// placeholder page is served.
	StaticDir string
	// Now supplies the local time used when a summary request has no day.
	Now func() time.Time
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	store  Store
	seeder Seeder
	router *gin.Engine
	static http.Handler
	now    func() time.Time
}

// NewServer creates and configures a new server.
func NewServer(store Store, seeder Seeder, opts Options) (*Server, error) {
	var files http.FileSystem
	if opts.StaticDir != "" {
		files = http.Dir(opts.StaticDir)
	} else {
		sub, err := fs.Sub(staticFiles, "static")
		if err != nil {
			return nil, err
		}
		files = http.FS(sub)
	}

	s := &Server{
		store:  store,
		seeder: seeder,
		router: gin.New(),
		static: http.FileServer(files),
		now:    opts.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.routes()
	return s, nil
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes() {
	s.router.Use(requestID(), accessLog(), gin.Recovery())

	api := s.router.Group("/api")
	{
		api.GET("/decks", s.handleListDecks())
		api.POST("/decks", s.handleCreateDeck())
		api.PUT("/decks/:id", s.handleUpdateDeck())
		api.DELETE("/decks/:id", s.handleDeleteDeck())

		api.POST("/cards", s.handleCreateCard())
		api.PUT("/cards/:id", s.handleUpdateCard())
		api.DELETE("/cards/:id", s.handleDeleteCard())

		api.GET("/review-stats", s.handleListReviewStats())
		api.POST("/review-stats", s.handleUpsertReviewStats())
		api.GET("/review-stats/summary", s.handleSummary())

		api.GET("/irregular-verbs/search", s.handleSearchIrregularVerbs())
		api.GET("/irregular-verbs/:infinitive", s.handleGetIrregularVerb())
		api.POST("/irregular-verbs/populate", s.handlePopulate())

		api.GET("/phrasal-verbs/count", s.handleCountPhrasalVerbs())
		api.GET("/phrasal-verbs/search", s.handleSearchPhrasalVerbs())
		api.GET("/phrasal-verbs/:id", s.handleGetPhrasalVerb())
		api.POST("/phrasal-verbs/populate", s.handlePopulate())
	}

	// Everything else is the front end.
	s.router.NoRoute(s.handleStatic())
}

func (s *Server) handleStatic() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if strings.HasPrefix(c.Request.URL.Path, "/api/") || (method != http.MethodGet && method != http.MethodHead) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
			return
		}
		s.static.ServeHTTP(c.Writer, c.Request)
	}
}

var okResponse = gin.H{"ok": true}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// internalError logs the cause and hides it from the client.
func internalError(c *gin.Context, msg string, err error) {
	slog.Error(msg, "error", err, "request_id", c.GetString(requestIDKey))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}
