package ndc

import "strings"

// Historical NDC segment-length conventions. The 10-digit era published
// 4-4-2, 5-3-2 and 5-4-1 codes; 5-4-2 is the padded 11-digit form; 6-3-2
// and 6-4-1 are forward-compatible shapes for 6-digit labelers.
var packageConventions = [][3]int{
	{5, 4, 2},
	{4, 4, 2},
	{5, 3, 2},
	{5, 4, 1},
	{6, 3, 2},
	{6, 4, 1},
}

var productConventions = [][2]int{
	{5, 4},
	{4, 4},
	{5, 3},
	{6, 4},
	{6, 3},
}

// DashedSegments holds the dash-separated pieces of an NDC
type DashedSegments struct {
	Labeler string
	Product string
	Package string // empty for product-level codes
}

// ParseDashed splits a dashed NDC and reports whether the segment lengths
// match a recognized package-level (3 segment) or product-level (2 segment)
// convention. Non-digit segments or unrecognized lengths return ok=false.
func ParseDashed(s string) (seg DashedSegments, ok bool) {
	parts := strings.Split(s, "-")
	for _, p := range parts {
		if !IsDigits(p) {
			return DashedSegments{}, false
		}
	}
	switch len(parts) {
	case 3:
		for _, c := range packageConventions {
			if len(parts[0]) == c[0] && len(parts[1]) == c[1] && len(parts[2]) == c[2] {
				return DashedSegments{Labeler: parts[0], Product: parts[1], Package: parts[2]}, true
			}
		}
	case 2:
		for _, c := range productConventions {
			if len(parts[0]) == c[0] && len(parts[1]) == c[1] {
				return DashedSegments{Labeler: parts[0], Product: parts[1]}, true
			}
		}
	}
	return DashedSegments{}, false
}

// NDC11FromDashed zero-pads a dashed package NDC (labeler to 5, product to
// 4, package to 2) and concatenates to the canonical 11-digit form. Returns
// "" when the input is not a recognized package-level code or the padded
// result is not 11 digits (6-digit labelers have no 11-digit form).
func NDC11FromDashed(s string) string {
	seg, ok := ParseDashed(s)
	if !ok || seg.Package == "" {
		return ""
	}
	out := pad(seg.Labeler, 5) + pad(seg.Product, 4) + pad(seg.Package, 2)
	if len(out) != 11 {
		return ""
	}
	return out
}

func pad(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}
