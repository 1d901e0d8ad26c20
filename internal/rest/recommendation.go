package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"myStorefront/domain"
	"myStorefront/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendationHandler struct {
		validate *validator.Validate
		service  RecommendationService
		timeout  time.Duration
	}

	RecommendationService interface {
		Recommend(ctx context.Context, userID uint, topN int) (domain.RecommendationResult, error)
		RankItems(ctx context.Context, pool, reference []domain.Item, topN int) (domain.RecommendationResult, error)
		ScoreCandidate(ctx context.Context, reference []domain.Item, candidate domain.Item) (domain.ScoredCandidate, error)
	}

	RecommendQuery struct {
		N int `query:"n" validate:"gte=0,lte=50"`
	}

	ItemRequest struct {
		ID            string   `json:"id" validate:"required"`
		Name          string   `json:"name"`
		Price         float64  `json:"price" validate:"gte=0"`
		OriginalPrice *float64 `json:"original_price" validate:"omitempty,gte=0"`
		Category      string   `json:"category"`
		Rating        float64  `json:"rating" validate:"gte=0,lte=5"`
		ReviewCount   int      `json:"review_count" validate:"gte=0"`
		Features      []string `json:"features"`
		InStock       bool     `json:"in_stock"`
	}

	ScoreRequest struct {
		Reference []ItemRequest `json:"reference" validate:"required,min=1,dive"`
		Candidate ItemRequest   `json:"candidate" validate:"required"`
	}

	// RankRequest candidates are validated by the ranker itself so one bad
	// item does not reject the whole pool.
	RankRequest struct {
		Reference  []ItemRequest `json:"reference" validate:"required,min=1,dive"`
		Candidates []ItemRequest `json:"candidates" validate:"required"`
		N          int           `json:"n" validate:"gte=0,lte=50"`
	}
)

func NewRecommendationHandler(svc RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		validate: validator.New(),
		service:  svc,
		timeout:  10 * time.Second,
	}
}

func (r ItemRequest) toItem() domain.Item {
	return domain.Item{
		ID:            r.ID,
		Name:          r.Name,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		Category:      r.Category,
		Rating:        r.Rating,
		ReviewCount:   r.ReviewCount,
		Features:      r.Features,
		InStock:       r.InStock,
	}
}

func toItems(reqs []ItemRequest) []domain.Item {
	items := make([]domain.Item, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, r.toItem())
	}
	return items
}

// GET /api/v1/recommendations?n=6
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	start := time.Now()
	defer func() {
		metrics.RecommendLatency.Observe(time.Since(start).Seconds())
	}()
	metrics.RecommendRequests.Inc()

	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	res, err := h.service.Recommend(ctx, userID, q.N)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(res))
}

// POST /api/v1/recommendations/score
func (h *RecommendationHandler) Score(c echo.Context) error {
	var req ScoreRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	scored, err := h.service.ScoreCandidate(ctx, toItems(req.Reference), req.Candidate.toItem())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidItem),
			errors.Is(err, domain.ErrEmptyReferenceSet),
			errors.Is(err, domain.ErrCandidateInReference):
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]any{
		"item_id":    scored.Item.ID,
		"confidence": scored.Confidence,
		"reasons":    scored.Reasons,
		"reason":     scored.Reason(),
	}))
}

// POST /api/v1/recommendations/rank
func (h *RecommendationHandler) Rank(c echo.Context) error {
	var req RankRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	res, err := h.service.RankItems(ctx, toItems(req.Candidates), toItems(req.Reference), req.N)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(res))
}
