package service

import (
	"context"
	"time"

	"github.com/fakturo/fakturo/internal/domain/document"
	"github.com/fakturo/fakturo/internal/types"
)

// NumberingService allocates human-facing document numbers. The counter is
// tenant and kind scoped and continuous for the tenant's lifetime: it never
// resets when the pattern's year or month tokens roll over.
type NumberingService interface {
	// NextNumber derives the next counter value from the highest allocated
	// one and renders it through the tenant's pattern at the given time.
	// Allocation is optimistic: persistence may still fail with a sequence
	// conflict when another writer takes the same number first, in which
	// case the caller re-allocates exactly once.
	NextNumber(ctx context.Context, tenantID string, kind types.DocumentKind, at time.Time) (string, int64, error)
}

type numberingService struct {
	ServiceParams
}

func NewNumberingService(params ServiceParams) NumberingService {
	return &numberingService{
		ServiceParams: params,
	}
}

func (s *numberingService) NextNumber(ctx context.Context, tenantID string, kind types.DocumentKind, at time.Time) (string, int64, error) {
	cfg, err := s.SettingsRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		return "", 0, err
	}

	max, err := s.DocumentRepo.GetMaxSequence(ctx, tenantID, kind)
	if err != nil {
		return "", 0, err
	}
	seq := max + 1

	number, err := document.RenderNumber(cfg.PatternFor(kind), seq, at)
	if err != nil {
		return "", 0, err
	}

	return number, seq, nil
}
