package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/conorfennell/vocabdeck/internal/storage"
)

func (s *Server) handleSearchIrregularVerbs() gin.HandlerFunc {
	return func(c *gin.Context) {
		verbs, err := s.store.SearchIrregularVerbs(c.Request.Context(), c.Query("q"))
		if err != nil {
			internalError(c, "Failed to search irregular verbs", err)
			return
		}
		c.JSON(http.StatusOK, verbs)
	}
}

// handleGetIrregularVerb answers null for an unknown verb rather than 404.
func (s *Server) handleGetIrregularVerb() gin.HandlerFunc {
	return func(c *gin.Context) {
		verb, err := s.store.FindIrregularVerb(c.Request.Context(), c.Param("infinitive"))
		if err != nil {
			internalError(c, "Failed to get irregular verb", err)
			return
		}
		if verb == nil {
			c.JSON(http.StatusOK, nil)
			return
		}
		c.JSON(http.StatusOK, verb)
	}
}

func (s *Server) handleCountPhrasalVerbs() gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := s.store.Count(c.Request.Context(), storage.TablePhrasalVerbs)
		if err != nil {
			internalError(c, "Failed to count phrasal verbs", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": n})
	}
}

func (s *Server) handleSearchPhrasalVerbs() gin.HandlerFunc {
	return func(c *gin.Context) {
		verbs, err := s.store.SearchPhrasalVerbs(c.Request.Context(), c.Query("q"))
		if err != nil {
			internalError(c, "Failed to search phrasal verbs", err)
			return
		}
		c.JSON(http.StatusOK, verbs)
	}
}

func (s *Server) handleGetPhrasalVerb() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			badRequest(c, fmt.Errorf("invalid phrasal verb id %q", c.Param("id")))
			return
		}
		verb, err := s.store.FindPhrasalVerb(c.Request.Context(), id)
		if err != nil {
			internalError(c, "Failed to get phrasal verb", err)
			return
		}
		if verb == nil {
			c.JSON(http.StatusOK, nil)
			return
		}
		c.JSON(http.StatusOK, verb)
	}
}

// handlePopulate runs the full seeder; both populate routes share it.
func (s *Server) handlePopulate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := s.seeder.Seed(c.Request.Context()); err != nil {
			internalError(c, "Failed to seed reference data", err)
			return
		}
		c.JSON(http.StatusOK, okResponse)
	}
}
