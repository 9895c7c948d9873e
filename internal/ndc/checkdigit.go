package ndc

// Check digit math for the two checksum-bearing identifier formats that
// embed an NDC: GTIN-14 (weights 3,1,3,... from the leftmost body digit)
// and UPC-A (odd positions x3 plus even positions, complement to 10).
// A mismatch invalidates the whole identifier; nothing is ever coerced.

// GTIN14CheckDigit computes the trailing check digit for a 13-digit GTIN-14
// body. Returns -1 if the body is not exactly 13 digits.
func GTIN14CheckDigit(body13 string) int {
	if len(body13) != 13 || !IsDigits(body13) {
		return -1
	}
	sum := 0
	for i, r := range body13 {
		d := int(r - '0')
		if i%2 == 0 {
			sum += d * 3
		} else {
			sum += d
		}
	}
	return (10 - sum%10) % 10
}

// UPCACheckDigit computes the trailing check digit for an 11-digit UPC-A
// body. Returns -1 if the body is not exactly 11 digits.
func UPCACheckDigit(body11 string) int {
	if len(body11) != 11 || !IsDigits(body11) {
		return -1
	}
	sum := 0
	for i, r := range body11 {
		d := int(r - '0')
		if i%2 == 0 {
			sum += d * 3
		} else {
			sum += d
		}
	}
	return (10 - sum%10) % 10
}

// ValidateGTIN14 recomputes the check digit from the first 13 digits and
// compares it to the supplied 14th. Wrong length or non-digit input is
// invalid outright.
func ValidateGTIN14(code string) bool {
	if len(code) != 14 || !IsDigits(code) {
		return false
	}
	return GTIN14CheckDigit(code[:13]) == int(code[13]-'0')
}

// ValidateUPCA recomputes the check digit from the first 11 digits and
// compares it to the supplied 12th.
func ValidateUPCA(code string) bool {
	if len(code) != 12 || !IsDigits(code) {
		return false
	}
	return UPCACheckDigit(code[:11]) == int(code[11]-'0')
}

// IsPharmaGTIN14 reports whether a GTIN-14 carries the NDC-encoding "03"
// prefix in digit positions 2-3 (after the indicator digit).
func IsPharmaGTIN14(code string) bool {
	return len(code) == 14 && code[1:3] == "03"
}

// IsPharmaUPCA reports whether a UPC-A begins with the pharmaceutical "3"
// number system digit, or "0" for historical OTC codes.
func IsPharmaUPCA(code string) bool {
	return len(code) == 12 && (code[0] == '3' || code[0] == '0')
}

// IsDigits reports whether s is non-empty and all ASCII digits
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
