package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/rxscan/backend/internal/barcode"
	"github.com/rxscan/backend/internal/domain"
)

// ScanService runs the whole pipeline for one scan: manual-override check,
// normalization, verification, pricing, line draft. Stages are sequential
// and each later stage sees the earlier stages' results; any stage can come
// back negative without hiding the progress already made.
type ScanService struct {
	normalizer *barcode.Normalizer
	verify     *VerifyService
	price      *PriceService
	overrides  *Overrides
}

// NewScanService wires the pipeline from its injected stages
func NewScanService(
	normalizer *barcode.Normalizer,
	verify *VerifyService,
	price *PriceService,
	overrides *Overrides,
) *ScanService {
	return &ScanService{
		normalizer: normalizer,
		verify:     verify,
		price:      price,
		overrides:  overrides,
	}
}

// Resolve processes one raw scan end to end. The returned error is non-nil
// only on context cancellation.
func (s *ScanService) Resolve(ctx context.Context, raw string) (*domain.ScanResolution, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, domain.ErrInvalidInput
	}

	if draft, ok := s.overrides.Get(raw); ok {
		log.Printf("[SCAN] override hit for %q", raw)
		return &domain.ScanResolution{
			Scan: &domain.NormalizedScan{
				OK:              true,
				BarcodeType:     domain.BarcodeTypeUnknown,
				NDC11:           draft.NDC11,
				NDC11Candidates: []string{draft.NDC11},
			},
			Draft:        draft,
			FromOverride: true,
		}, nil
	}

	scan := s.normalizer.Normalize(raw)
	resolution := &domain.ScanResolution{Scan: scan}
	if !scan.OK {
		return resolution, nil
	}

	verification, err := s.verify.Verify(ctx, scan.NDC11Candidates)
	if err != nil {
		return nil, err
	}
	resolution.Verification = verification

	// Price against the verified identity when there is one, otherwise
	// against the scan's own candidates.
	ndc11 := scan.NDC11
	var product *domain.ProductRecord
	if verification.OK {
		ndc11 = verification.NDC11
		product = verification.MatchedProduct
	}
	price, err := s.price.Resolve(ctx, ndc11, product, scan.NDC11Candidates)
	if err != nil {
		return nil, err
	}
	resolution.Price = price

	resolution.Draft = BuildLineDraft(verification)
	return resolution, nil
}
