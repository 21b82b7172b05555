package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		recipe string
		vendor string
		want   bool
	}{
		{"exact ignoring case and spaces", "  Almonds ", "almonds", true},
		{"singular inside plural", "Almond", "Almonds", true},
		{"punctuation stripped", "Pista (Salted)", "pista salted", true},
		{"whitespace collapsed", "black   raisins", "Black Raisins", true},
		{"synonym only", "Salted Pista", "Pistachios", true},
		{"synonym with qualifier", "Walnut Kernels", "walnuts", true},
		{"golden is yellow", "Golden Raisins", "Yellow Raisin", true},
		{"different nuts", "Almonds", "Cashews", false},
		{"seeds differ", "Pumpkin Seeds", "Sunflower Seeds", false},
		{"empty never matches", "", "", false},
		{"punctuation only", "--", "almonds", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.recipe, tt.vendor))
		})
	}
}

func TestMatchesIsSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"Almonds", "almond"},
		{"Walnut Kernels", "Walnuts"},
		{"Cashew Nuts", "cashews"},
		{"Raisins", "raisin"},
		{"Dates", "Date"},
		{"Salted Pista", "Pistachios"},
		{"Pumpkin Seeds", "pumpkin"},
		{"Sunflower", "Sunflower Seed"},
		{"Black Raisins", "black raisin"},
		{"Golden Raisins", "Yellow Raisin"},
		{"Almonds", "Cashews"},
	}
	for _, p := range pairs {
		assert.Equal(t, Matches(p[0], p[1]), Matches(p[1], p[0]), "%q vs %q", p[0], p[1])
	}
}

func TestEverySynonymGroupMatchesAcrossVariants(t *testing.T) {
	for group, variants := range synonymGroups {
		first := variants[0]
		for _, v := range variants[1:] {
			assert.True(t, Matches(first, v), "group %s: %q vs %q", group, first, v)
			assert.True(t, Matches(v, first), "group %s: %q vs %q", group, v, first)
		}
	}
}
