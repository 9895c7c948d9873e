package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/rxscan/backend/internal/domain"
	"github.com/rxscan/backend/internal/infrastructure/cache"
	"github.com/rxscan/backend/internal/ndc"
)

// cachedProduct is the cache value for one registry query. A nil Record is
// a remembered negative: the registry answered and had no matching row.
type cachedProduct struct {
	Record *domain.ProductRecord
}

// VerifyService resolves an ordered list of NDC-11 candidates against the
// product registry: first at package granularity, then at product
// granularity, stopping at the first success. Lookups are strictly
// sequential so a first match wins without a burst of parallel requests
// against the rate-limited registry.
type VerifyService struct {
	registry domain.ProductRegistry
	cache    domain.CacheRepository
}

// NewVerifyService creates a verification resolver with injected deps
func NewVerifyService(registry domain.ProductRegistry, cacheRepo domain.CacheRepository) *VerifyService {
	return &VerifyService{registry: registry, cache: cacheRepo}
}

// Verify walks the candidate list. The returned error is non-nil only when
// ctx was cancelled; every other outcome, including "no match anywhere", is
// a structured result.
func (s *VerifyService) Verify(ctx context.Context, candidates []string) (*domain.VerificationResult, error) {
	tried := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if len(c) == 11 && ndc.IsDigits(c) {
			tried = append(tried, c)
		}
	}
	if len(tried) == 0 {
		return &domain.VerificationResult{
			OK:              false,
			TriedCandidates: []string{},
			Reason:          "no NDC-11 candidates to verify",
		}, nil
	}

	queries := 0
	transportFailures := 0

	// Package pass: an exact package hit resolves the segment-boundary
	// ambiguity outright, so searching stops at the first one.
	for _, ndc11 := range tried {
		for _, packageNDC := range ndc.PackageCandidates(ndc11) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			queries++
			record, err := s.lookup(ctx, "pkg", packageNDC, func(qctx context.Context) (*domain.ProductRecord, error) {
				return s.registry.FindByPackageNDC(qctx, packageNDC)
			})
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return nil, err
				}
				log.Printf("[VERIFY] package query %s failed: %v", packageNDC, err)
				transportFailures++
				continue
			}
			if record == nil {
				continue
			}
			return &domain.VerificationResult{
				OK:              true,
				Confidence:      domain.ConfidencePackageExact,
				NDC11:           ndc11,
				MatchedPackage:  findPackaging(record, packageNDC),
				MatchedProduct:  record,
				TriedCandidates: tried,
			}, nil
		}
	}

	// Product pass: weaker granularity, only reached when no candidate
	// matched an exact package.
	for _, ndc11 := range tried {
		for _, productNDC := range ndc.ProductCandidates(ndc11) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			queries++
			record, err := s.lookup(ctx, "prod", productNDC, func(qctx context.Context) (*domain.ProductRecord, error) {
				return s.registry.FindByProductNDC(qctx, productNDC)
			})
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return nil, err
				}
				log.Printf("[VERIFY] product query %s failed: %v", productNDC, err)
				transportFailures++
				continue
			}
			if record == nil {
				continue
			}
			return &domain.VerificationResult{
				OK:              true,
				Confidence:      domain.ConfidenceProductLevel,
				NDC11:           ndc11,
				MatchedProduct:  record,
				TriedCandidates: tried,
			}, nil
		}
	}

	reason := "no registry record matched any candidate"
	if transportFailures > 0 && transportFailures == queries {
		reason = domain.ReasonRegistryUnreachable
	}
	return &domain.VerificationResult{
		OK:              false,
		TriedCandidates: tried,
		Reason:          reason,
	}, nil
}

// lookup wraps one registry query with the per-candidate cache. Both hits
// and answered-but-empty results are remembered; transport failures are
// not, so a later scan retries them.
func (s *VerifyService) lookup(
	ctx context.Context,
	kind, dashed string,
	query func(context.Context) (*domain.ProductRecord, error),
) (*domain.ProductRecord, error) {
	key := cache.Key("verify", kind+":"+dashed)
	if v, err := s.cache.Get(key); err == nil {
		if c, ok := v.(cachedProduct); ok {
			return c.Record, nil
		}
	}

	record, err := query(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoMatch) {
			s.cache.Set(key, cachedProduct{})
			return nil, nil
		}
		return nil, err
	}
	s.cache.Set(key, cachedProduct{Record: record})
	return record, nil
}

func findPackaging(record *domain.ProductRecord, packageNDC string) *domain.Packaging {
	for i := range record.Packaging {
		if record.Packaging[i].PackageNDC == packageNDC {
			return &record.Packaging[i]
		}
	}
	return nil
}
