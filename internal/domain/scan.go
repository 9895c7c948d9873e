package domain

// BarcodeType classifies what the normalizer recognized in the raw input
type BarcodeType string

const (
	BarcodeTypeGS1Composite BarcodeType = "gs1-composite"
	BarcodeTypeGTIN14       BarcodeType = "gtin14"
	BarcodeTypeUPCA         BarcodeType = "upca"
	BarcodeTypeNDC11        BarcodeType = "ndc11"
	BarcodeTypeNDC10        BarcodeType = "ndc10"
	BarcodeTypeDashedNDC    BarcodeType = "dashed-ndc"
	BarcodeTypeUnknown      BarcodeType = "unknown"
)

// NormalizedScan is the result of running raw scanner input through the
// barcode normalizer. When OK is true, NDC11 is always a member of
// NDC11Candidates and every candidate is exactly 11 digits, ordered most
// plausible segmentation first.
type NormalizedScan struct {
	OK              bool        `json:"ok"`
	Reason          string      `json:"reason,omitempty"`
	Suggestions     []string    `json:"suggestions,omitempty"`
	BarcodeType     BarcodeType `json:"barcodeType"`
	NDC11           string      `json:"ndc11,omitempty"`
	NDC11Candidates []string    `json:"ndc11Candidates,omitempty"`
	Lot             string      `json:"lot,omitempty"`
	Expiry          string      `json:"expiry,omitempty"` // ISO date (YYYY-MM-DD)
	Serial          string      `json:"serial,omitempty"`
	ProductionDate  string      `json:"productionDate,omitempty"` // ISO date
}

// ScanRequest is the raw input from a scanner or manual keystrokes
type ScanRequest struct {
	Barcode string `json:"barcode" binding:"required"`
}

// ScanResolution is the full pipeline output for one scan: normalization,
// verification, pricing, and the line draft when enough was resolved. Each
// stage is populated independently so callers can render partial progress
// ("found the product but not the price").
type ScanResolution struct {
	Scan         *NormalizedScan     `json:"scan"`
	Verification *VerificationResult `json:"verification,omitempty"`
	Price        *PriceResult        `json:"price,omitempty"`
	Draft        *LineDraft          `json:"draft,omitempty"`
	FromOverride bool                `json:"fromOverride,omitempty"`
}
