package domain

// Confidence describes how specifically a verification result matched the
// query. It is a total order: package-exact > product-level > none.
type Confidence string

const (
	ConfidencePackageExact Confidence = "package-exact"
	ConfidenceProductLevel Confidence = "product-level"
	ConfidenceNone         Confidence = ""
)

// Packaging is one package entry on a registry product record
type Packaging struct {
	PackageNDC  string `json:"package_ndc"`
	Description string `json:"description"`
	Sample      bool   `json:"sample,omitempty"`
}

// ProductRecord is a product as returned by the external product registry
type ProductRecord struct {
	ProductNDC  string      `json:"product_ndc"`
	BrandName   string      `json:"brand_name,omitempty"`
	GenericName string      `json:"generic_name,omitempty"`
	LabelerName string      `json:"labeler_name,omitempty"`
	DosageForm  string      `json:"dosage_form,omitempty"`
	Route       []string    `json:"route,omitempty"`
	Strength    string      `json:"active_ingredient_strength,omitempty"`
	Packaging   []Packaging `json:"packaging,omitempty"`
	DEASchedule string      `json:"dea_schedule,omitempty"`
}

// VerificationResult is the outcome of resolving an ordered NDC-11 candidate
// list against the product registry. Immutable once returned; the resolver
// never downgrades a higher confidence once found.
type VerificationResult struct {
	OK              bool           `json:"ok"`
	Confidence      Confidence     `json:"confidence,omitempty"`
	NDC11           string         `json:"ndc11,omitempty"`
	MatchedPackage  *Packaging     `json:"matchedPackage,omitempty"`
	MatchedProduct  *ProductRecord `json:"matchedProduct,omitempty"`
	TriedCandidates []string       `json:"triedCandidates"`
	Reason          string         `json:"reason,omitempty"`
}

// LineDraft is the sole output contract the line-item/report layer depends
// on: a normalized package size, a derived item name, and the labeler.
type LineDraft struct {
	NDC11       string `json:"ndc11"`
	ItemName    string `json:"itemName"`
	PackageSize string `json:"packageSize,omitempty"`
	LabelerName string `json:"labelerName,omitempty"`
	DEASchedule string `json:"deaSchedule,omitempty"`
}
