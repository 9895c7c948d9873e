package domain

import "context"

// CacheRepository defines the interface for caching resolver results.
// Implementations own their entries exclusively; callers exposing one
// instance to concurrent lookups must rely on the implementation to
// serialize get/set pairs.
type CacheRepository interface {
	Get(key string) (interface{}, error)
	Set(key string, value interface{})
}

// ProductRegistry defines the interface for the external product registry.
// Each query returns zero or one matching record; zero is reported as
// ErrNoMatch, transport failures as ErrRegistryUnavailable.
type ProductRegistry interface {
	FindByPackageNDC(ctx context.Context, packageNDC string) (*ProductRecord, error)
	FindByProductNDC(ctx context.Context, productNDC string) (*ProductRecord, error)
}

// PriceSource defines the interface for the external pricing dataset.
// The top row of the dataset's own ordering is returned for the queried NDC.
type PriceSource interface {
	FindByNDC(ctx context.Context, ndc11 string) (*PriceRow, error)
}
