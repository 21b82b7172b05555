package costing

import (
	"strings"
	"unicode"
)

// synonymGroups is the canonical synonym table used everywhere an ingredient name
// has to be matched against a vendor catalog name.
var synonymGroups = map[string][]string{
	"almond":        {"almond", "almonds"},
	"walnut":        {"walnut", "walnuts"},
	"cashew":        {"cashew", "cashews", "cashew nut", "cashew nuts"},
	"raisin":        {"raisin", "raisins"},
	"date":          {"date", "dates"},
	"pista":         {"pista", "pistachio", "pistachios", "pista salted", "salted pista"},
	"pumpkin":       {"pumpkin", "pumpkin seed", "pumpkin seeds"},
	"sunflower":     {"sunflower", "sunflower seed", "sunflower seeds"},
	"black raisin":  {"black raisin", "black raisins"},
	"yellow raisin": {"yellow raisin", "yellow raisins", "golden raisin", "golden raisins"},
}

// Matches reports whether a recipe ingredient name refers to a vendor catalog name.
//
// The match is deliberately forgiving: a false positive prices an ingredient from a
// similar catalog entry instead of reporting it as missing.
func Matches(recipeName, vendorName string) bool {
	a := strings.ToLower(strings.TrimSpace(recipeName))
	b := strings.ToLower(strings.TrimSpace(vendorName))
	if a == b {
		return a != ""
	}

	na, nb := normalizeName(a), normalizeName(b)
	if na == "" || nb == "" {
		return false
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}

	for _, variants := range synonymGroups {
		if matchesAny(na, variants) && matchesAny(nb, variants) {
			return true
		}
	}
	return false
}

func matchesAny(name string, variants []string) bool {
	for _, v := range variants {
		if strings.Contains(name, v) {
			return true
		}
	}
	return false
}

// normalizeName lower-cases, drops punctuation and collapses whitespace runs.
func normalizeName(s string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			space = true
		}
	}
	return b.String()
}

// nameKey is the consolidation key of an ingredient name. Lines are merged by name,
// never by identity.
func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
