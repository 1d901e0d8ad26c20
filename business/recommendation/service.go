package recommendation

import (
	"context"
	"fmt"

	"myStorefront/business/scoring"
	"myStorefront/domain"
	"myStorefront/pkg/logger"
	"myStorefront/pkg/utils"
)

// ---- Repository interfaces ----

type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
}

type CompareRepository interface {
	List(ctx context.Context, userID uint) ([]uint64, error)
}

// ---- Service ----

type Service struct {
	productRepo ProductRepository
	compareRepo CompareRepository
	eligChecker EligibilityChecker
	defaultTopN int
}

func NewService(
	productRepo ProductRepository,
	compareRepo CompareRepository,
	eligChecker EligibilityChecker,
	defaultTopN int,
) *Service {
	if eligChecker == nil {
		eligChecker = NoopEligibilityChecker{}
	}
	if defaultTopN <= 0 {
		defaultTopN = scoring.DefaultTopN
	}
	return &Service{
		productRepo: productRepo,
		compareRepo: compareRepo,
		eligChecker: eligChecker,
		defaultTopN: defaultTopN,
	}
}

const (
	msgNoReference     = "add products to your compare list to get recommendations"
	msgNoMatches       = "no recommendations match your compare list yet"
	outcomeServed      = "served"
	outcomeNoReference = "no_reference"
	outcomeNoMatches   = "no_matches"
)

// Recommend ranks the catalog against the user's compare list. An empty
// compare list is a normal, empty result.
func (s *Service) Recommend(ctx context.Context, userID uint, topN int) (domain.RecommendationResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecommendationResult{}, fmt.Errorf("context error: %w", err)
	}
	if topN <= 0 {
		topN = s.defaultTopN
	}

	pool, index, err := s.loadCandidates(ctx, userID)
	if err != nil {
		return domain.RecommendationResult{}, err
	}

	reference, err := s.loadReferenceSet(ctx, userID, index)
	if err != nil {
		return domain.RecommendationResult{}, err
	}

	tid := utils.TraceIDFromContext(ctx)
	logger.Debug("recommend",
		"trace_id", tid,
		"user_id", userID,
		"limit", topN,
		"reference_count", len(reference),
		"candidate_count", len(pool),
	)

	if len(reference) == 0 {
		RecommendationsTotal.WithLabelValues(outcomeNoReference).Inc()
		return domain.RecommendationResult{
			Items:   []domain.ScoredCandidate{},
			Empty:   true,
			Message: msgNoReference,
		}, nil
	}

	ranked := scoring.RankRecommendations(pool, reference, topN)

	res := domain.RecommendationResult{
		Items:          ranked,
		ReferenceCount: len(reference),
	}
	if len(ranked) == 0 {
		RecommendationsTotal.WithLabelValues(outcomeNoMatches).Inc()
		res.Empty = true
		res.Message = msgNoMatches
		return res, nil
	}

	RecommendationsTotal.WithLabelValues(outcomeServed).Inc()
	return res, nil
}

// RankItems ranks an explicit pool against an explicit reference set.
func (s *Service) RankItems(ctx context.Context, pool, reference []domain.Item, topN int) (domain.RecommendationResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecommendationResult{}, fmt.Errorf("context error: %w", err)
	}
	if topN <= 0 {
		topN = s.defaultTopN
	}
	if len(reference) == 0 {
		return domain.RecommendationResult{Items: []domain.ScoredCandidate{}, Empty: true, Message: msgNoReference}, nil
	}

	ranked := scoring.RankRecommendations(pool, reference, topN)
	res := domain.RecommendationResult{Items: ranked, ReferenceCount: len(reference)}
	if len(ranked) == 0 {
		res.Empty = true
		res.Message = msgNoMatches
	}
	return res, nil
}

// ScoreCandidate scores one candidate against a reference set. Unlike the
// ranked list, the returned confidence is not capped for display.
func (s *Service) ScoreCandidate(ctx context.Context, reference []domain.Item, candidate domain.Item) (domain.ScoredCandidate, error) {
	if err := ctx.Err(); err != nil {
		return domain.ScoredCandidate{}, fmt.Errorf("context error: %w", err)
	}
	if len(reference) == 0 {
		return domain.ScoredCandidate{}, domain.ErrEmptyReferenceSet
	}
	if err := candidate.Validate(); err != nil {
		return domain.ScoredCandidate{}, err
	}
	for _, ref := range reference {
		if err := ref.Validate(); err != nil {
			return domain.ScoredCandidate{}, err
		}
		if ref.ID == candidate.ID {
			return domain.ScoredCandidate{}, domain.ErrCandidateInReference
		}
	}

	return scoring.ScoreItem(reference, candidate), nil
}
