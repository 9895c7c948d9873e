package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/rxscan/backend/internal/domain"
	"github.com/rxscan/backend/internal/infrastructure/cache"
	"github.com/rxscan/backend/internal/ndc"
)

// cachedPrice is the cache value for one pricing query. A nil Row is a
// remembered negative.
type cachedPrice struct {
	Row *domain.PriceRow
}

// PriceService resolves a current unit price for an NDC-11, deriving
// further candidates from a verified product's known packages and from
// 10-digit re-expansion when the input is still ambiguous. Queries run
// sequentially, first hit wins.
type PriceService struct {
	source domain.PriceSource
	cache  domain.CacheRepository
}

// NewPriceService creates a price resolver with injected deps
func NewPriceService(source domain.PriceSource, cacheRepo domain.CacheRepository) *PriceService {
	return &PriceService{source: source, cache: cacheRepo}
}

// Resolve queries the pricing dataset once per candidate. product may be
// nil (unverified scan); extraCandidates carries the normalizer's remaining
// NDC-11 candidates for ambiguous input. The returned error is non-nil only
// on context cancellation.
func (s *PriceService) Resolve(
	ctx context.Context,
	ndc11 string,
	product *domain.ProductRecord,
	extraCandidates []string,
) (*domain.PriceResult, error) {
	candidates := s.buildCandidates(ndc11, product, extraCandidates)
	if len(candidates) == 0 {
		return &domain.PriceResult{
			OK:     false,
			Reason: "no NDC-11 candidates to price",
		}, nil
	}

	transportFailures := 0
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := s.lookup(ctx, c)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			log.Printf("[PRICE] query %s failed: %v", c, err)
			transportFailures++
			continue
		}
		if row == nil {
			continue
		}
		return &domain.PriceResult{
			OK:              true,
			NDC11:           c,
			PricePerUnit:    row.PricePerUnit,
			PricingUnit:     row.PricingUnit,
			EffectiveDate:   row.EffectiveDate,
			TriedCandidates: candidates,
		}, nil
	}

	reason := "no price row matched any candidate"
	if transportFailures == len(candidates) {
		reason = domain.ReasonPricingUnreachable
	}
	return &domain.PriceResult{
		OK:              false,
		TriedCandidates: candidates,
		Reason:          reason,
	}, nil
}

// buildCandidates combines the direct input, every package identifier known
// from the verified product, and 10-digit re-expansions, in that order.
func (s *PriceService) buildCandidates(ndc11 string, product *domain.ProductRecord, extra []string) []string {
	var raw []string
	if len(ndc11) == 11 && ndc.IsDigits(ndc11) {
		raw = append(raw, ndc11)
	}
	if product != nil {
		for _, p := range product.Packaging {
			if c := ndc.NDC11FromDashed(p.PackageNDC); c != "" {
				raw = append(raw, c)
			}
		}
	}
	for _, c := range extra {
		if len(c) == 11 && ndc.IsDigits(c) {
			raw = append(raw, c)
		}
	}
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// lookup wraps one pricing query with the per-candidate cache. Answered
// negatives are remembered; transport failures are not.
func (s *PriceService) lookup(ctx context.Context, ndc11 string) (*domain.PriceRow, error) {
	key := cache.Key("price", ndc11)
	if v, err := s.cache.Get(key); err == nil {
		if c, ok := v.(cachedPrice); ok {
			return c.Row, nil
		}
	}

	row, err := s.source.FindByNDC(ctx, ndc11)
	if err != nil {
		if errors.Is(err, domain.ErrNoMatch) {
			s.cache.Set(key, cachedPrice{})
			return nil, nil
		}
		return nil, err
	}
	s.cache.Set(key, cachedPrice{Row: row})
	return row, nil
}
