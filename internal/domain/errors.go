package domain

import "errors"

var (
	// ErrNoMatch is returned when the external dataset responded but no
	// record matched the queried identifier
	ErrNoMatch = errors.New("no matching record in dataset")

	// ErrRegistryUnavailable is returned when a product registry request
	// itself failed (timeout, non-2xx, network)
	ErrRegistryUnavailable = errors.New("product registry request failed")

	// ErrPricingUnavailable is returned when a pricing dataset request
	// itself failed
	ErrPricingUnavailable = errors.New("pricing dataset request failed")

	// ErrCacheMiss is returned when a key is not present in the cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidInput is returned when request parameters are structurally
	// invalid
	ErrInvalidInput = errors.New("invalid input")
)

// Failure reasons the delivery layer distinguishes from ordinary negative
// results: every candidate query failed at the transport level, so the
// negative says nothing about the scanned item.
const (
	ReasonRegistryUnreachable = "product registry unreachable for every candidate"
	ReasonPricingUnreachable  = "pricing dataset unreachable for every candidate"
)
