package keywords

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveSearchTerm(t *testing.T) {
	tests := []struct {
		name     string
		criteria string
		want     string
	}{
		{"explicit investor wins", "all the investors I know", "investor"},
		{"explicit tech wins", "everyone working in tech companies", "tech"},
		{"finance before sector scan", "contacts in finance downtown", "finance"},
		{"sector table", "people in healthcare", "healthcare"},
		{"quoted phrase", `contacts from "Acme Corp" please`, "acme corp"},
		{"last word fallback", "everyone from brooklyn", "brooklyn"},
		{"empty criteria", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DeriveSearchTerm(tt.criteria))
		})
	}
}

func TestInferFilterField(t *testing.T) {
	require.Equal(t, "businessSector", InferFilterField("everyone in tech"))
	require.Equal(t, "address", InferFilterField("contacts in williamsburg"))
	require.Equal(t, "company", InferFilterField("people at Initech"))
}

func TestIsSectorTerm(t *testing.T) {
	require.True(t, IsSectorTerm("Real Estate professionals"))
	require.False(t, IsSectorTerm("friends from college"))
}

func TestIsLocationTerm(t *testing.T) {
	require.True(t, IsLocationTerm("Upper East Side buyers"))
	require.False(t, IsLocationTerm("software engineers"))
}
