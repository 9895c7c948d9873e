package barcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGS1(t *testing.T) {
	fields, ok := parseGS1("01003040603570511726080010ABC123\x1d21XYZ789")

	require.True(t, ok)
	assert.Equal(t, "00304060357051", fields.gtin14)
	assert.Equal(t, "260800", fields.expiry)
	assert.Equal(t, "ABC123", fields.lot)
	assert.Equal(t, "XYZ789", fields.serial)
}

func TestParseGS1_FixedConcatenation(t *testing.T) {
	// all-fixed AIs need no FNC1 separators
	fields, ok := parseGS1("0100304060357051112501011726080030000012")

	require.True(t, ok)
	assert.Equal(t, "00304060357051", fields.gtin14)
	assert.Equal(t, "250101", fields.prodDate)
	assert.Equal(t, "260800", fields.expiry)
	assert.Equal(t, "000012", fields.quantity)
}

func TestParseGS1_NetWeight(t *testing.T) {
	fields, ok := parseGS1("01003040603570513103001250")

	require.True(t, ok)
	assert.Equal(t, "001250", fields.weightRaw)
}

func TestParseGS1_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "no GTIN", payload: "10ABC123"},
		{name: "unknown AI", payload: "990012345678901234"},
		{name: "short GTIN", payload: "01123"},
		{name: "non-digit GTIN", payload: "01abcdefghijklmn"},
		{name: "empty", payload: ""},
		{name: "plain UPC", payload: "300451002005"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := parseGS1(tt.payload)
			assert.False(t, ok)
		})
	}
}

func TestGS1DateToISO(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "normal date", input: "260815", want: "2026-08-15"},
		{name: "day 00 is last day of month", input: "260800", want: "2026-08-31"},
		{name: "day 00 in february", input: "250200", want: "2025-02-28"},
		{name: "day 00 in leap february", input: "240200", want: "2024-02-29"},
		{name: "century pivot", input: "990101", want: "1999-01-01"},
		{name: "bad month", input: "261315", want: ""},
		{name: "bad day", input: "260845", want: ""},
		{name: "wrong length", input: "2608", want: ""},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gs1DateToISO(tt.input))
		})
	}
}
