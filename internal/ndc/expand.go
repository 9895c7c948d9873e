package ndc

// Candidate expansion for the two directions of NDC ambiguity: which
// convention produced a 10-digit code (10->11), and which convention an
// 11-digit code should be re-segmented under (11->dashed). Expansion is
// pure and total: invalid input yields an empty list, never an error.

// ExpandNDC10 produces every plausible 11-digit form of a 10-digit NDC by
// inserting the padding zero at each position implied by the historical
// conventions. Order encodes likelihood (most plausible first) and is
// significant: it drives resolver search order. Results are de-duplicated
// with insertion order preserved.
func ExpandNDC10(ndc10 string) []string {
	if len(ndc10) != 10 || !IsDigits(ndc10) {
		return nil
	}
	raw := []string{
		"0" + ndc10,                      // 4-4-2 labeler pad
		ndc10[:5] + "0" + ndc10[5:],      // 5-3-2 product pad
		ndc10[:9] + "0" + ndc10[9:],      // 5-4-1 package pad
		ndc10[:6] + "0" + ndc10[6:],      // 6-3-2 forward compatibility
	}
	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, c := range raw {
		if len(c) != 11 || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// PackageCandidates re-segments an 11-digit NDC into every dashed
// package-level form implied by the historical conventions, most plausible
// first. Conventions that strip a padding zero only apply when that zero is
// actually present. The 5-3-3 slice and the shifted reading of a
// leading-zero number are empirically motivated trailing candidates: a miss
// on them carries no signal.
func PackageCandidates(ndc11 string) []string {
	if len(ndc11) != 11 || !IsDigits(ndc11) {
		return nil
	}
	var raw []string
	// 5-4-2: the canonical modern segmentation
	raw = append(raw, ndc11[:5]+"-"+ndc11[5:9]+"-"+ndc11[9:])
	// 4-4-2: the leading digit was the padding zero
	if ndc11[0] == '0' {
		raw = append(raw, ndc11[1:5]+"-"+ndc11[5:9]+"-"+ndc11[9:])
	}
	// 5-3-2: the zero at position 5 was the padding zero
	if ndc11[5] == '0' {
		raw = append(raw, ndc11[:5]+"-"+ndc11[6:9]+"-"+ndc11[9:])
	}
	// 5-4-1: the zero at position 9 was the padding zero
	if ndc11[9] == '0' {
		raw = append(raw, ndc11[:5]+"-"+ndc11[5:9]+"-"+ndc11[10:])
	}
	// 5-3-3 variant
	raw = append(raw, ndc11[:5]+"-"+ndc11[5:8]+"-"+ndc11[8:])
	// shifted 5-4-1 reading when the whole number was left-padded
	if ndc11[0] == '0' {
		raw = append(raw, ndc11[1:6]+"-"+ndc11[6:10]+"-"+ndc11[10:])
	}
	return dedupe(raw)
}

// ProductCandidates re-segments an 11-digit NDC into dashed product-level
// (labeler-product) forms, dropping the package segment.
func ProductCandidates(ndc11 string) []string {
	if len(ndc11) != 11 || !IsDigits(ndc11) {
		return nil
	}
	var raw []string
	raw = append(raw, ndc11[:5]+"-"+ndc11[5:9])
	if ndc11[0] == '0' {
		raw = append(raw, ndc11[1:5]+"-"+ndc11[5:9])
	}
	if ndc11[5] == '0' {
		raw = append(raw, ndc11[:5]+"-"+ndc11[6:9])
	}
	if ndc11[0] == '0' {
		raw = append(raw, ndc11[1:6]+"-"+ndc11[6:10])
	}
	return dedupe(raw)
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
