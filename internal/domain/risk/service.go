package risk

import (
	"context"

	"github.com/claimlens/claimlens/internal/domain/claims"
)

// Service resolves the three-way input contract and runs the rule engine.
type Service struct {
	claims  *claims.Service
	metrics claims.Metrics
}

func NewService(cs *claims.Service) *Service {
	return &Service{claims: cs}
}

// WithMetrics attaches a metrics sink and returns the service.
func (s *Service) WithMetrics(m claims.Metrics) *Service {
	s.metrics = m
	return s
}

// Analyze evaluates the claim identified by exactly one input channel. Input
// contract violations surface as BAD_REQUEST; claim content defects surface
// as flags inside a successful assessment.
func (s *Service) Analyze(ctx context.Context, in claims.Input) (*Assessment, error) {
	c, err := s.claims.ResolveClaim(ctx, in)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.OperationCounter(claims.KindNormalized, "analyze")
	}
	return Evaluate(c), nil
}
