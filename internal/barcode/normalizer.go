package barcode

import (
	"fmt"
	"strings"

	"github.com/rxscan/backend/internal/domain"
	"github.com/rxscan/backend/internal/ndc"
)

// Strictness selects how hard the normalizer enforces pharmaceutical
// structural rules. Lenient accepts the historical OTC "0" UPC-A prefix;
// strict requires the "3" drug prefix.
type Strictness string

const (
	StrictnessLenient Strictness = "lenient"
	StrictnessStrict  Strictness = "strict"
)

// Options configures a Normalizer
type Options struct {
	Strictness Strictness
}

// Normalizer turns raw scanner input into an ordered list of NDC-11
// candidates plus auxiliary fields. Classification is a strict priority
// waterfall: the first recognized shape wins.
type Normalizer struct {
	strictness Strictness
}

// NewNormalizer creates a normalizer with the given options
func NewNormalizer(opts Options) *Normalizer {
	strictness := opts.Strictness
	if strictness == "" {
		strictness = StrictnessLenient
	}
	return &Normalizer{strictness: strictness}
}

// symbology identifier prefixes emitted by scanners ahead of the payload
var symbologyPrefixes = []string{"]C1", "]E0", "]e0", "]d2", "]Q3", "]A0"}

// Normalize classifies raw scanner or keyboard input and extracts NDC-11
// candidates. It never returns an error: unrecognized input produces an
// ok=false scan with a reason and suggestions for guided manual entry.
func (n *Normalizer) Normalize(raw string) *domain.NormalizedScan {
	cleaned := stripSymbology(raw)
	if cleaned == "" {
		return failure(domain.BarcodeTypeUnknown, "empty barcode", nil)
	}

	// Dashed input is never a checksum-bearing code; route it straight to
	// the dashed path before digit-count classification.
	if strings.Contains(cleaned, "-") {
		if seg, ok := ndc.ParseDashed(cleaned); ok {
			digits := digitsOnly(cleaned)
			if len(digits) == 10 || len(digits) == 11 {
				return n.normalizeDashed(cleaned, seg)
			}
		}
	}

	digits := digitsOnly(cleaned)

	switch len(digits) {
	case 10:
		candidates := ndc.ExpandNDC10(digits)
		return success(domain.BarcodeTypeNDC10, candidates, gs1Fields{})
	case 11:
		if digits[0] != '3' {
			return success(domain.BarcodeTypeNDC11, []string{digits}, gs1Fields{})
		}
		// 11 digits starting with 3: plausibly a UPC-A missing its check digit
		return n.normalizeUPCA(digits)
	case 14:
		return n.normalizeGTIN14(digits, domain.BarcodeTypeGTIN14, gs1Fields{})
	}

	if fields, ok := parseGS1(cleaned); ok {
		scan := n.normalizeGTIN14(fields.gtin14, domain.BarcodeTypeGS1Composite, fields)
		return scan
	}

	if len(digits) == 12 {
		return n.normalizeUPCA(digits)
	}

	return n.exhausted(digits)
}

// normalizeGTIN14 validates a 14-digit GTIN and expands its embedded NDC-10
func (n *Normalizer) normalizeGTIN14(code string, typ domain.BarcodeType, fields gs1Fields) *domain.NormalizedScan {
	if want := ndc.GTIN14CheckDigit(code[:13]); want != int(code[13]-'0') {
		reason := fmt.Sprintf("invalid GTIN-14 check digit: expected %d, got %c", want, code[13])
		return failure(typ, reason, []string{"re-scan the barcode", "enter the NDC from the package label"})
	}
	if !ndc.IsPharmaGTIN14(code) {
		reason := fmt.Sprintf("GTIN-14 %s does not carry the NDC \"03\" prefix; not a drug item code", code)
		return failure(typ, reason, []string{"enter the NDC from the package label"})
	}
	candidates := ndc.ExpandNDC10(code[3:13])
	scan := success(typ, candidates, fields)
	return scan
}

// normalizeUPCA validates an 11- or 12-digit UPC-A and expands its embedded
// NDC-10. An 11-digit body gets its check digit computed and appended.
func (n *Normalizer) normalizeUPCA(digits string) *domain.NormalizedScan {
	code := digits
	if len(code) == 11 {
		code = code + string(rune('0'+ndc.UPCACheckDigit(code)))
	}
	if len(code) != 12 {
		return n.exhausted(digits)
	}
	if want := ndc.UPCACheckDigit(code[:11]); len(digits) == 12 && want != int(code[11]-'0') {
		reason := fmt.Sprintf("Invalid UPC-A check digit: expected %d, got %c", want, code[11])
		return failure(domain.BarcodeTypeUPCA, reason, []string{"re-scan the barcode", "enter the NDC from the package label"})
	}
	if !n.pharmaUPCAPrefix(code) {
		reason := fmt.Sprintf("UPC-A number system digit %c is not pharmaceutical", code[0])
		return failure(domain.BarcodeTypeUPCA, reason, []string{"enter the NDC from the package label"})
	}
	candidates := ndc.ExpandNDC10(code[1:11])
	return success(domain.BarcodeTypeUPCA, candidates, gs1Fields{})
}

func (n *Normalizer) pharmaUPCAPrefix(code string) bool {
	if n.strictness == StrictnessStrict {
		return code[0] == '3'
	}
	return ndc.IsPharmaUPCA(code)
}

// normalizeDashed zero-pads a recognized dashed NDC to its canonical
// 11-digit form. Product-level (two segment) codes carry no package segment
// and cannot be resolved to a single NDC-11.
func (n *Normalizer) normalizeDashed(cleaned string, seg ndc.DashedSegments) *domain.NormalizedScan {
	if seg.Package == "" {
		reason := fmt.Sprintf("%s is a product-level NDC; add the package segment to identify a specific package", cleaned)
		return failure(domain.BarcodeTypeDashedNDC, reason, []string{"append the 1-2 digit package code from the label"})
	}
	ndc11 := ndc.NDC11FromDashed(cleaned)
	if ndc11 == "" {
		return failure(domain.BarcodeTypeDashedNDC, fmt.Sprintf("%s does not pad to an 11-digit NDC", cleaned), nil)
	}
	return success(domain.BarcodeTypeDashedNDC, []string{ndc11}, gs1Fields{})
}

// exhausted builds the diagnostic failure for input no format matched,
// tailored to the observed digit count so the UI can guide manual entry.
func (n *Normalizer) exhausted(digits string) *domain.NormalizedScan {
	var reason string
	var suggestions []string
	switch {
	case len(digits) == 13:
		reason = fmt.Sprintf("13 digits (%s): looks like a non-pharmaceutical EAN-13", digits)
		suggestions = []string{"this may not be a drug item", "enter the NDC from the package label"}
	case len(digits) < 10:
		reason = fmt.Sprintf("only %d digits: the scan may be truncated", len(digits))
		suggestions = []string{"re-scan the full barcode", "enter the 11-digit NDC manually"}
	case len(digits) > 14:
		reason = fmt.Sprintf("%d digits: possibly multiple concatenated codes", len(digits))
		suggestions = []string{"scan one barcode at a time", "enter the 11-digit NDC manually"}
	default:
		reason = fmt.Sprintf("unrecognized barcode format (%d digits)", len(digits))
		suggestions = []string{"enter the 11-digit NDC manually"}
	}
	return failure(domain.BarcodeTypeUnknown, reason, suggestions)
}

// stripSymbology removes scanner symbology identifiers and leading control
// characters from raw input
func stripSymbology(raw string) string {
	s := strings.TrimSpace(raw)
	for _, p := range symbologyPrefixes {
		if strings.HasPrefix(s, p) {
			s = s[len(p):]
			break
		}
	}
	for len(s) > 0 && s[0] < 0x20 {
		s = s[1:]
	}
	return strings.TrimSpace(s)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func success(typ domain.BarcodeType, candidates []string, fields gs1Fields) *domain.NormalizedScan {
	if len(candidates) == 0 {
		return failure(typ, "no NDC candidates could be derived", nil)
	}
	return &domain.NormalizedScan{
		OK:              true,
		BarcodeType:     typ,
		NDC11:           candidates[0],
		NDC11Candidates: candidates,
		Lot:             fields.lot,
		Expiry:          gs1DateToISO(fields.expiry),
		Serial:          fields.serial,
		ProductionDate:  gs1DateToISO(fields.prodDate),
	}
}

func failure(typ domain.BarcodeType, reason string, suggestions []string) *domain.NormalizedScan {
	return &domain.NormalizedScan{
		OK:          false,
		BarcodeType: typ,
		Reason:      reason,
		Suggestions: suggestions,
	}
}
