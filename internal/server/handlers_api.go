package server

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/uederson-ferreira/social-fi-credit/internal/domain"
	apperrors "github.com/uederson-ferreira/social-fi-credit/internal/errors"
)

type scoreResponse struct {
	AuthorID      string    `json:"author_id"`
	Score         int       `json:"score"`
	PreviousScore int       `json:"previous_score"`
	ComputedAt    time.Time `json:"computed_at"`
}

func toScoreResponse(record domain.ScoreRecord) scoreResponse {
	return scoreResponse{
		AuthorID:      record.AuthorID,
		Score:         record.Score,
		PreviousScore: record.PreviousScore,
		ComputedAt:    record.ComputedAt,
	}
}

func (s *Server) handleListScores(c echo.Context) error {
	records, err := s.store.List(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to list scores", err)
	}

	out := make([]scoreResponse, 0, len(records))
	for _, record := range records {
		out = append(out, toScoreResponse(record))
	}
	return c.JSON(200, out)
}

func (s *Server) handleGetScore(c echo.Context) error {
	authorID := c.Param("author_id")
	if authorID == "" {
		return apperrors.ValidationError("author_id is required")
	}

	record, err := s.store.Get(c.Request().Context(), authorID)
	if err != nil {
		if errors.Is(err, domain.ErrScoreNotFound) {
			return apperrors.NotFoundError("no score for author").
				WithContext("author_id", authorID)
		}
		return apperrors.InternalError("failed to load score", err)
	}

	return c.JSON(200, toScoreResponse(*record))
}
