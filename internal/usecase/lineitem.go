package usecase

import (
	"regexp"
	"strings"

	"github.com/rxscan/backend/internal/domain"
)

// Line draft construction: the one output contract the line-item/report
// layer depends on. Registry packaging descriptions are free text like
// "100 CAPSULE in 1 BOTTLE (0781-1089-01)"; the draft carries a normalized
// size, a derived item name and the labeler.

// leading "<count> <unit>" of a packaging description
var packageSizePattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s+([A-Za-z]+)`)

// unitNames maps registry unit spellings to their normalized singular form
var unitNames = map[string]string{
	"capsule":     "capsule",
	"tablet":      "tablet",
	"lozenge":     "lozenge",
	"suppository": "suppository",
	"patch":       "patch",
	"vial":        "vial",
	"syringe":     "syringe",
	"ampule":      "ampule",
	"kit":         "kit",
	"packet":      "packet",
	"ml":          "mL",
	"l":           "L",
	"g":           "g",
	"gm":          "g",
	"mg":          "mg",
}

// BuildLineDraft derives the line-item draft from a verification result.
// Returns nil when verification did not match anything.
func BuildLineDraft(v *domain.VerificationResult) *domain.LineDraft {
	if v == nil || !v.OK || v.MatchedProduct == nil {
		return nil
	}
	product := v.MatchedProduct

	draft := &domain.LineDraft{
		NDC11:       v.NDC11,
		ItemName:    deriveItemName(product),
		LabelerName: product.LabelerName,
		DEASchedule: product.DEASchedule,
	}
	if v.MatchedPackage != nil {
		draft.PackageSize = NormalizePackageSize(v.MatchedPackage.Description)
	}
	return draft
}

// NormalizePackageSize turns a free-text packaging description into a short
// "count unit" string: "100 CAPSULE in 1 BOTTLE" -> "100 capsules". Text it
// cannot parse is returned trimmed rather than dropped.
func NormalizePackageSize(description string) string {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return ""
	}
	// Only the innermost quantity matters; drop the outer container part
	if idx := strings.Index(strings.ToLower(desc), " in "); idx > 0 {
		desc = desc[:idx]
	}

	m := packageSizePattern.FindStringSubmatch(desc)
	if m == nil {
		return desc
	}
	count, unitRaw := m[1], strings.ToLower(m[2])

	unit, known := unitNames[unitRaw]
	if !known {
		unit = unitRaw
	}
	if isCountedUnit(unit) && count != "1" {
		unit += "s"
	}
	return count + " " + unit
}

// isCountedUnit reports whether a unit pluralizes with its count (capsules,
// tablets) as opposed to measures (mL, g)
func isCountedUnit(unit string) bool {
	switch unit {
	case "mL", "L", "g", "mg":
		return false
	}
	return true
}

// deriveItemName builds "name strength form" from the product record,
// preferring the brand name and falling back to the generic
func deriveItemName(p *domain.ProductRecord) string {
	name := p.BrandName
	if name == "" {
		name = p.GenericName
	}
	name = titleCase(name)

	parts := []string{name}
	if p.Strength != "" {
		parts = append(parts, p.Strength)
	}
	if p.DosageForm != "" {
		parts = append(parts, titleCase(p.DosageForm))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// titleCase lowercases registry SHOUTING and capitalizes each word
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
