package barcode

import (
	"fmt"
	"time"

	"github.com/rxscan/backend/internal/ndc"
)

// GS1 Application Identifier parsing. Composite payloads concatenate
// AI-prefixed fields, fixed-length AIs back to back and variable-length
// AIs terminated by FNC1 (ASCII 29) or end of input.

const fnc1 = '\x1d'

// gs1Fields holds the AI values extracted from one composite payload
type gs1Fields struct {
	gtin14     string // AI 01
	prodDate   string // AI 11, YYMMDD
	expiry     string // AI 17, YYMMDD
	lot        string // AI 10
	serial     string // AI 21
	quantity   string // AI 30
	weightRaw  string // AI 310n/320n, 6 digits
}

// fixed-length AI payload sizes (two-digit AIs)
var fixedAILengths = map[string]int{
	"01": 14,
	"11": 6,
	"17": 6,
}

// variable-length AIs, terminated by FNC1 or end of payload
var variableAIs = map[string]int{
	"10": 20,
	"21": 20,
	"30": 8,
}

// parseGS1 decomposes a composite payload into its AI fields. It succeeds
// only when the whole payload is consumed by recognized AIs and an AI 01
// (GTIN) was present; anything else reports ok=false so the caller can fall
// through to the next classification.
func parseGS1(payload string) (gs1Fields, bool) {
	var f gs1Fields
	s := payload
	for len(s) > 0 {
		if s[0] == fnc1 {
			s = s[1:]
			continue
		}
		if len(s) < 2 {
			return gs1Fields{}, false
		}
		ai := s[:2]

		// 310n/320n: four-character AI, six-digit value
		if ai == "31" || ai == "32" {
			if len(s) < 10 || !ndc.IsDigits(s[2:4]) || !ndc.IsDigits(s[4:10]) {
				return gs1Fields{}, false
			}
			if s[2] != '0' {
				return gs1Fields{}, false
			}
			f.weightRaw = s[4:10]
			s = s[10:]
			continue
		}

		if n, ok := fixedAILengths[ai]; ok {
			if len(s) < 2+n || !ndc.IsDigits(s[2:2+n]) {
				return gs1Fields{}, false
			}
			value := s[2 : 2+n]
			switch ai {
			case "01":
				f.gtin14 = value
			case "11":
				f.prodDate = value
			case "17":
				f.expiry = value
			}
			s = s[2+n:]
			continue
		}

		if maxLen, ok := variableAIs[ai]; ok {
			rest := s[2:]
			end := len(rest)
			for i := 0; i < len(rest); i++ {
				if rest[i] == fnc1 {
					end = i
					break
				}
			}
			if end == 0 || end > maxLen {
				return gs1Fields{}, false
			}
			value := rest[:end]
			switch ai {
			case "10":
				f.lot = value
			case "21":
				f.serial = value
			case "30":
				if !ndc.IsDigits(value) {
					return gs1Fields{}, false
				}
				f.quantity = value
			}
			s = rest[end:]
			continue
		}

		return gs1Fields{}, false
	}

	if f.gtin14 == "" {
		return gs1Fields{}, false
	}
	return f, true
}

// gs1DateToISO converts a YYMMDD AI date to ISO form. Day "00" means the
// last day of the month. Years pivot at 50: YY < 50 is 20YY, else 19YY.
func gs1DateToISO(yymmdd string) string {
	if len(yymmdd) != 6 || !ndc.IsDigits(yymmdd) {
		return ""
	}
	yy := int(yymmdd[0]-'0')*10 + int(yymmdd[1]-'0')
	mm := int(yymmdd[2]-'0')*10 + int(yymmdd[3]-'0')
	dd := int(yymmdd[4]-'0')*10 + int(yymmdd[5]-'0')
	if mm < 1 || mm > 12 {
		return ""
	}
	year := 1900 + yy
	if yy < 50 {
		year = 2000 + yy
	}
	if dd == 0 {
		// last day of the month
		last := time.Date(year, time.Month(mm)+1, 0, 0, 0, 0, 0, time.UTC)
		dd = last.Day()
	} else if dd > 31 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, mm, dd)
}
