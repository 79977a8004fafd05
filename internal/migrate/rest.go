package migrate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/conorfennell/vocabdeck/internal/domain"
)

// DefaultPageSize matches PostgREST's usual max-rows setting.
const DefaultPageSize = 1000

// RESTSource reads tables through a PostgREST endpoint such as Supabase's
// /rest/v1. Pages are requested one after another until a short page.
type RESTSource struct {
	baseURL  string
	key      string
	pageSize int
	client   *http.Client
}

// NewRESTSource returns a source for the project at baseURL, authenticated
// with key. A non-positive pageSize uses DefaultPageSize.
func NewRESTSource(baseURL, key string, pageSize int, timeout time.Duration) *RESTSource {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &RESTSource{
		baseURL:  strings.TrimRight(baseURL, "/"),
		key:      key,
		pageSize: pageSize,
		client:   &http.Client{Timeout: timeout},
	}
}

type remoteCard struct {
	ID           string   `json:"id"`
	DeckID       string   `json:"deck_id"`
	Front        string   `json:"front"`
	Back         string   `json:"back"`
	Ease         *float64 `json:"ease"`
	Interval     *int     `json:"interval"`
	Reps         *int     `json:"reps"`
	Lapses       *int     `json:"lapses"`
	Grade        *int     `json:"grade"`
	DueDate      *string  `json:"due_date"`
	LastReviewed *string  `json:"last_reviewed"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    *string  `json:"updated_at"`
}

type remoteStats struct {
	Day             string `json:"day"`
	Reviews         *int   `json:"reviews"`
	Correct         *int   `json:"correct"`
	Lapses          *int   `json:"lapses"`
	AllDueCompleted *bool  `json:"all_due_completed"`
}

func orDefault[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// Decks fetches all decks by creation time, ties broken by id.
func (s *RESTSource) Decks(ctx context.Context) ([]domain.Deck, error) {
	return fetchAll[domain.Deck](ctx, s, "decks", "created_at.asc,id.asc")
}

// Cards fetches all cards by creation time and id. Missing scheduling fields get
// the defaults of a new card and a missing updated_at copies created_at.
func (s *RESTSource) Cards(ctx context.Context) ([]domain.Card, error) {
	rows, err := fetchAll[remoteCard](ctx, s, "cards", "created_at.asc,id.asc")
	if err != nil {
		return nil, err
	}
	cards := make([]domain.Card, 0, len(rows))
	for _, r := range rows {
		cards = append(cards, domain.Card{
			ID:           r.ID,
			DeckID:       r.DeckID,
			Front:        r.Front,
			Back:         r.Back,
			Ease:         orDefault(r.Ease, domain.DefaultEase),
			Interval:     orDefault(r.Interval, domain.DefaultInterval),
			Reps:         orDefault(r.Reps, 0),
			Lapses:       orDefault(r.Lapses, 0),
			Grade:        r.Grade,
			DueDate:      r.DueDate,
			LastReviewed: r.LastReviewed,
			CreatedAt:    r.CreatedAt,
			UpdatedAt:    orDefault(r.UpdatedAt, r.CreatedAt),
		})
	}
	return cards, nil
}

// ReviewStats fetches all day rows by day. Missing counters are 0.
func (s *RESTSource) ReviewStats(ctx context.Context) ([]domain.ReviewStatsDay, error) {
	rows, err := fetchAll[remoteStats](ctx, s, "review_stats", "day.asc")
	if err != nil {
		return nil, err
	}
	stats := make([]domain.ReviewStatsDay, 0, len(rows))
	for _, r := range rows {
		stats = append(stats, domain.ReviewStatsDay{
			Day:             r.Day,
			Reviews:         orDefault(r.Reviews, 0),
			Correct:         orDefault(r.Correct, 0),
			Lapses:          orDefault(r.Lapses, 0),
			AllDueCompleted: r.AllDueCompleted,
		})
	}
	return stats, nil
}

func fetchAll[T any](ctx context.Context, s *RESTSource, table, order string) ([]T, error) {
	var all []T
	for offset := 0; ; offset += s.pageSize {
		page, err := fetchPage[T](ctx, s, table, order, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < s.pageSize {
			return all, nil
		}
	}
}

func fetchPage[T any](ctx context.Context, s *RESTSource, table, order string, offset int) ([]T, error) {
	q := url.Values{}
	q.Set("order", order)
	q.Set("limit", strconv.Itoa(s.pageSize))
	q.Set("offset", strconv.Itoa(offset))
	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", s.baseURL, table, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", table, err)
	}
	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s at offset %d: %w", table, offset, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetching %s at offset %d: unexpected status %s: %s",
			table, offset, resp.Status, strings.TrimSpace(string(body)))
	}

	var page []T
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode %s page at offset %d: %w", table, offset, err)
	}
	return page, nil
}
