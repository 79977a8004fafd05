package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/conorfennell/vocabdeck/internal/domain"
	"github.com/conorfennell/vocabdeck/internal/storage"
	"github.com/conorfennell/vocabdeck/internal/summary"
)

type reviewStatsRequest struct {
	Day             *string `json:"day" binding:"required"`
	Reviews         *int    `json:"reviews"`
	Correct         *int    `json:"correct"`
	Lapses          *int    `json:"lapses"`
	AllDueCompleted *bool   `json:"all_due_completed"`
	Increment       bool    `json:"increment"`
}

func (s *Server) handleListReviewStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := s.store.ListReviewStats(c.Request.Context(), c.Query("start"), c.Query("end"))
		if err != nil {
			internalError(c, "Failed to list review stats", err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

func (s *Server) handleUpsertReviewStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reviewStatsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		err := s.store.UpsertReviewStats(c.Request.Context(), domain.ReviewStatsUpdate{
			Day:             *req.Day,
			Reviews:         req.Reviews,
			Correct:         req.Correct,
			Lapses:          req.Lapses,
			AllDueCompleted: req.AllDueCompleted,
			Increment:       req.Increment,
		})
		if err != nil {
			internalError(c, "Failed to upsert review stats", err)
			return
		}
		c.JSON(http.StatusOK, okResponse)
	}
}

// handleSummary reports today, the current week and the streak. The day
// comes from ?today=YYYY-MM-DD, defaulting to the server's local date.
func (s *Server) handleSummary() gin.HandlerFunc {
	return func(c *gin.Context) {
		today := s.now()
		if q := c.Query("today"); q != "" {
			t, err := time.Parse(summary.DayLayout, q)
			if err != nil {
				badRequest(c, fmt.Errorf("invalid today %q: want YYYY-MM-DD", q))
				return
			}
			today = t
		}

		ctx := c.Request.Context()
		stats, err := s.store.ListReviewStats(ctx,
			summary.WindowStart(today).Format(summary.DayLayout),
			today.Format(summary.DayLayout),
		)
		if err != nil {
			internalError(c, "Failed to load review stats for summary", err)
			return
		}
		total, err := s.store.Count(ctx, storage.TableCards)
		if err != nil {
			internalError(c, "Failed to count cards", err)
			return
		}
		c.JSON(http.StatusOK, summary.Compute(stats, today, total))
	}
}
