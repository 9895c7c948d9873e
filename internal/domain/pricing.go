package domain

// PriceRow is a single row from the external pricing dataset
type PriceRow struct {
	NDC           string  `json:"ndc"`
	PricePerUnit  float64 `json:"nadac_per_unit,string"`
	PricingUnit   string  `json:"pricing_unit"`
	EffectiveDate string  `json:"effective_date"`
	Description   string  `json:"ndc_description,omitempty"`
}

// PriceResult is the outcome of resolving an NDC-11 (and its derived
// candidates) against the pricing dataset. EffectiveDate reflects the
// dataset's own versioning, not lookup time.
type PriceResult struct {
	OK              bool     `json:"ok"`
	NDC11           string   `json:"ndc11,omitempty"`
	PricePerUnit    float64  `json:"pricePerUnit,omitempty"`
	PricingUnit     string   `json:"pricingUnit,omitempty"`
	EffectiveDate   string   `json:"effectiveDate,omitempty"`
	TriedCandidates []string `json:"triedCandidates,omitempty"`
	Reason          string   `json:"reason,omitempty"`
}
