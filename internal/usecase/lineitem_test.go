package usecase

import (
	"testing"

	"github.com/rxscan/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePackageSize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "capsules in bottle", input: "100 CAPSULE in 1 BOTTLE", want: "100 capsules"},
		{name: "single unit stays singular", input: "1 KIT in 1 CARTON", want: "1 kit"},
		{name: "tablets", input: "30 TABLET in 1 BLISTER PACK", want: "30 tablets"},
		{name: "volume unit not pluralized", input: "473 mL in 1 BOTTLE", want: "473 mL"},
		{name: "grams", input: "30 g in 1 TUBE", want: "30 g"},
		{name: "gm spelling", input: "15 GM in 1 TUBE", want: "15 g"},
		{name: "unknown unit passes through", input: "2 INHALER in 1 CARTON", want: "2 inhalers"},
		{name: "unparseable text returned trimmed", input: "BOTTLE, PLASTIC", want: "BOTTLE, PLASTIC"},
		{name: "empty", input: "", want: ""},
		{name: "decimal count", input: "2.5 mL in 1 VIAL", want: "2.5 mL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePackageSize(tt.input))
		})
	}
}

func TestBuildLineDraft(t *testing.T) {
	result := &domain.VerificationResult{
		OK:         true,
		Confidence: domain.ConfidencePackageExact,
		NDC11:      "00781108901",
		MatchedPackage: &domain.Packaging{
			PackageNDC:  "0781-1089-01",
			Description: "100 CAPSULE in 1 BOTTLE",
		},
		MatchedProduct: &domain.ProductRecord{
			ProductNDC:  "0781-1089",
			BrandName:   "AMOXICILLIN",
			GenericName: "amoxicillin",
			LabelerName: "Sandoz Inc",
			DosageForm:  "CAPSULE",
			Strength:    "500 mg/1",
			DEASchedule: "",
		},
	}

	draft := BuildLineDraft(result)

	require.NotNil(t, draft)
	assert.Equal(t, "00781108901", draft.NDC11)
	assert.Equal(t, "Amoxicillin 500 mg/1 Capsule", draft.ItemName)
	assert.Equal(t, "100 capsules", draft.PackageSize)
	assert.Equal(t, "Sandoz Inc", draft.LabelerName)
}

func TestBuildLineDraft_GenericFallback(t *testing.T) {
	result := &domain.VerificationResult{
		OK:         true,
		Confidence: domain.ConfidenceProductLevel,
		NDC11:      "00781108901",
		MatchedProduct: &domain.ProductRecord{
			GenericName: "LISINOPRIL",
			DosageForm:  "TABLET",
			LabelerName: "Lupin Pharmaceuticals",
		},
	}

	draft := BuildLineDraft(result)

	require.NotNil(t, draft)
	assert.Equal(t, "Lisinopril Tablet", draft.ItemName)
	assert.Empty(t, draft.PackageSize, "no package match means no size")
}

func TestBuildLineDraft_NegativeVerification(t *testing.T) {
	assert.Nil(t, BuildLineDraft(nil))
	assert.Nil(t, BuildLineDraft(&domain.VerificationResult{OK: false}))
}
