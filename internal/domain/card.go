package domain

// Deck is a named collection of cards. Cards is only populated by reads
// that nest a deck's cards; it is never nil in that shape.
type Deck struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	Cards     []Card `json:"cards"`
}

// Card is a front/back study item. The scheduling fields (Ease, Interval,
// Reps, Lapses, Grade, DueDate) are written by the client as-is; nothing on
// the server derives them.
type Card struct {
	ID           string  `json:"id"`
	DeckID       string  `json:"deck_id"`
	Front        string  `json:"front"`
	Back         string  `json:"back"`
	Ease         float64 `json:"ease"`
	Interval     int     `json:"interval"`
	Reps         int     `json:"reps"`
	Lapses       int     `json:"lapses"`
	Grade        *int    `json:"grade"`
	DueDate      *string `json:"due_date"`
	LastReviewed *string `json:"last_reviewed"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// Defaults for a card that has never been reviewed.
const (
	DefaultEase     = 2.5
	DefaultInterval = 1
)

// NewCard returns a card carrying the default scheduling values.
func NewCard(id, deckID, front, back string) Card {
	return Card{
		ID:       id,
		DeckID:   deckID,
		Front:    front,
		Back:     back,
		Ease:     DefaultEase,
		Interval: DefaultInterval,
	}
}
