package listing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		listing  Listing
		expected string
	}{
		{
			name:     "name wins when set",
			listing:  Listing{ID: "l1", Name: "Oak House", Address: "123 Main St"},
			expected: "Oak House",
		},
		{
			name:     "whitespace-only name skipped in favor of address",
			listing:  Listing{ID: "l1", Name: "  ", Address: "123 Main St"},
			expected: "123 Main St",
		},
		{
			name:     "street address before title",
			listing:  Listing{ID: "l1", StreetAddress: "420 Main Street", Title: "Corner Lot"},
			expected: "420 Main Street",
		},
		{
			name:     "title as last candidate",
			listing:  Listing{ID: "l1", Title: "Corner Lot"},
			expected: "Corner Lot",
		},
		{
			name:     "all blank synthesizes from id suffix",
			listing:  Listing{ID: "abcdef123456"},
			expected: "Listing 123456",
		},
		{
			name:     "short id used whole",
			listing:  Listing{ID: "l1"},
			expected: "Listing l1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.listing.DisplayName())
		})
	}
}
