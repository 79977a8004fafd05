package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/conorfennell/vocabdeck/internal/domain"
)

// Required string fields are pointers so that an empty string is accepted
// and only a missing field is rejected.
type deckRequest struct {
	ID        *string `json:"id" binding:"required"`
	Name      *string `json:"name" binding:"required"`
	CreatedAt string  `json:"created_at"`
}

type cardRequest struct {
	ID           *string  `json:"id" binding:"required"`
	DeckID       *string  `json:"deck_id" binding:"required"`
	Front        *string  `json:"front" binding:"required"`
	Back         *string  `json:"back" binding:"required"`
	Ease         *float64 `json:"ease"`
	Interval     *int     `json:"interval"`
	Reps         *int     `json:"reps"`
	Lapses       *int     `json:"lapses"`
	Grade        *int     `json:"grade"`
	DueDate      *string  `json:"due_date"`
	LastReviewed *string  `json:"last_reviewed"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

// bindCard decodes a card body. Fields the client leaves out keep the
// defaults of a new card. The scheduling fields are prefilled, so a nil
// after decoding means the client sent an explicit null.
func bindCard(c *gin.Context) (domain.Card, error) {
	ease, interval, reps, lapses := domain.DefaultEase, domain.DefaultInterval, 0, 0
	req := cardRequest{
		Ease:     &ease,
		Interval: &interval,
		Reps:     &reps,
		Lapses:   &lapses,
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return domain.Card{}, err
	}
	switch {
	case req.Ease == nil:
		return domain.Card{}, errors.New("ease must not be null")
	case req.Interval == nil:
		return domain.Card{}, errors.New("interval must not be null")
	case req.Reps == nil:
		return domain.Card{}, errors.New("reps must not be null")
	case req.Lapses == nil:
		return domain.Card{}, errors.New("lapses must not be null")
	}
	return domain.Card{
		ID:           *req.ID,
		DeckID:       *req.DeckID,
		Front:        *req.Front,
		Back:         *req.Back,
		Ease:         *req.Ease,
		Interval:     *req.Interval,
		Reps:         *req.Reps,
		Lapses:       *req.Lapses,
		Grade:        req.Grade,
		DueDate:      req.DueDate,
		LastReviewed: req.LastReviewed,
		CreatedAt:    req.CreatedAt,
		UpdatedAt:    req.UpdatedAt,
	}, nil
}

func (s *Server) handleListDecks() gin.HandlerFunc {
	return func(c *gin.Context) {
		decks, err := s.store.ListDecks(c.Request.Context())
		if err != nil {
			internalError(c, "Failed to list decks", err)
			return
		}
		c.JSON(http.StatusOK, decks)
	}
}

func (s *Server) handleCreateDeck() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req deckRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		if err := s.store.CreateDeck(c.Request.Context(), *req.ID, *req.Name, req.CreatedAt); err != nil {
			internalError(c, "Failed to create deck", err)
			return
		}
		c.JSON(http.StatusCreated, okResponse)
	}
}

// handleUpdateDeck renames the deck named in the path. The body id is
// required but not used.
func (s *Server) handleUpdateDeck() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req deckRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		if err := s.store.UpdateDeck(c.Request.Context(), c.Param("id"), *req.Name); err != nil {
			internalError(c, "Failed to update deck", err)
			return
		}
		c.JSON(http.StatusOK, okResponse)
	}
}

func (s *Server) handleDeleteDeck() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.store.DeleteDeck(c.Request.Context(), c.Param("id")); err != nil {
			internalError(c, "Failed to delete deck", err)
			return
		}
		c.JSON(http.StatusOK, okResponse)
	}
}

func (s *Server) handleCreateCard() gin.HandlerFunc {
	return func(c *gin.Context) {
		card, err := bindCard(c)
		if err != nil {
			badRequest(c, err)
			return
		}
		if err := s.store.SaveCard(c.Request.Context(), card); err != nil {
			internalError(c, "Failed to save card", err)
			return
		}
		c.JSON(http.StatusCreated, okResponse)
	}
}

func (s *Server) handleUpdateCard() gin.HandlerFunc {
	return func(c *gin.Context) {
		card, err := bindCard(c)
		if err != nil {
			badRequest(c, err)
			return
		}
		if err := s.store.UpdateCard(c.Request.Context(), c.Param("id"), card); err != nil {
			internalError(c, "Failed to update card", err)
			return
		}
		c.JSON(http.StatusOK, okResponse)
	}
}

func (s *Server) handleDeleteCard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.store.DeleteCard(c.Request.Context(), c.Param("id")); err != nil {
			internalError(c, "Failed to delete card", err)
			return
		}
		c.JSON(http.StatusOK, okResponse)
	}
}
