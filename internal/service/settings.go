package service

import (
	"context"
	"strings"
	"time"

	"github.com/fakturo/fakturo/internal/api/dto"
	"github.com/fakturo/fakturo/internal/domain/document"
	ierr "github.com/fakturo/fakturo/internal/errors"
)

type SettingsService interface {
	GetSettings(ctx context.Context, tenantID string) (*dto.SettingsResponse, error)
	UpdateSettings(ctx context.Context, tenantID string, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	ServiceParams
}

func NewSettingsService(params ServiceParams) SettingsService {
	return &settingsService{
		ServiceParams: params,
	}
}

func (s *settingsService) GetSettings(ctx context.Context, tenantID string) (*dto.SettingsResponse, error) {
	cfg, err := s.SettingsRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return dto.NewSettingsResponse(cfg), nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, tenantID string, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	cfg, err := s.SettingsRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if req.DefaultTaxRate != nil {
		if req.DefaultTaxRate.IsNegative() {
			return nil, ierr.NewError("negative tax rate").
				WithHint("The default tax rate must be non negative").
				Mark(ierr.ErrValidation)
		}
		cfg.DefaultTaxRate = *req.DefaultTaxRate
	}
	if req.PaymentTermDays != nil {
		if *req.PaymentTermDays < 0 {
			return nil, ierr.NewError("negative payment term").
				WithHint("Payment term days must be non negative").
				Mark(ierr.ErrValidation)
		}
		cfg.PaymentTermDays = *req.PaymentTermDays
	}
	if req.InvoicePattern != nil {
		if err := validatePattern(*req.InvoicePattern); err != nil {
			return nil, err
		}
		cfg.InvoicePattern = *req.InvoicePattern
	}
	if req.OfferPattern != nil {
		if err := validatePattern(*req.OfferPattern); err != nil {
			return nil, err
		}
		cfg.OfferPattern = *req.OfferPattern
	}

	if err := s.SettingsRepo.Update(ctx, cfg); err != nil {
		return nil, err
	}
	return dto.NewSettingsResponse(cfg), nil
}

// validatePattern rejects patterns the renderer cannot produce a number from.
func validatePattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return ierr.NewError("empty numbering pattern").
			WithHint("Numbering patterns cannot be empty").
			Mark(ierr.ErrValidation)
	}
	_, err := document.RenderNumber(pattern, 1, time.Now().UTC())
	return err
}
