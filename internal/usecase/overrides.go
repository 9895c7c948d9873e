package usecase

import (
	"strings"

	"github.com/rxscan/backend/internal/domain"
	"github.com/rxscan/backend/internal/infrastructure/cache"
)

// Overrides is the manual-entry cache: user-curated line drafts keyed by
// the exact raw scanned text, consulted before normalization so a curated
// answer short-circuits the whole resolution pipeline.
type Overrides struct {
	cache domain.CacheRepository
}

// NewOverrides creates an override store on the given cache
func NewOverrides(cacheRepo domain.CacheRepository) *Overrides {
	return &Overrides{cache: cacheRepo}
}

// Get returns the curated draft for a raw scan, if one exists
func (o *Overrides) Get(rawScan string) (*domain.LineDraft, bool) {
	v, err := o.cache.Get(o.key(rawScan))
	if err != nil {
		return nil, false
	}
	draft, ok := v.(*domain.LineDraft)
	if !ok {
		return nil, false
	}
	return draft, true
}

// Put stores a curated draft for a raw scan
func (o *Overrides) Put(rawScan string, draft *domain.LineDraft) error {
	if strings.TrimSpace(rawScan) == "" || draft == nil {
		return domain.ErrInvalidInput
	}
	o.cache.Set(o.key(rawScan), draft)
	return nil
}

func (o *Overrides) key(rawScan string) string {
	return cache.Key("override", rawScan)
}
