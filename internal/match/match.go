package match

import (
	"sort"
	"strconv"
	"strings"
)

// numericTolerance is the absolute tolerance for numeric comparison.
const numericTolerance = 0.001

// Matches reports whether a learner's free-text answer is correct.
//
// Two tiers: a numeric comparison with absolute tolerance when both sides
// parse as floats, then an order-insensitive multi-part string comparison.
// Short answers are predominantly numeric, but symbolic or multi-value
// answers ("x=1, x=-2") would be wrongly rejected by strict equality.
func Matches(user, expected string) bool {
	if strings.TrimSpace(user) == "" {
		return false
	}

	if ok, decided := matchNumeric(user, expected); decided {
		return ok
	}

	return matchParts(user, expected)
}

// matchNumeric attempts the numeric tier. The second return value is false
// when either side is non-numeric or contains a comma (multi-part), in
// which case the string tier decides.
func matchNumeric(user, expected string) (bool, bool) {
	if strings.Contains(user, ",") || strings.Contains(expected, ",") {
		return false, false
	}
	a, errA := strconv.ParseFloat(Normalize(user), 64)
	b, errB := strconv.ParseFloat(Normalize(expected), 64)
	if errA != nil || errB != nil {
		return false, false
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < numericTolerance, true
}

// matchParts splits both answers on commas and semicolons and requires the
// same multiset of normalized parts. Order and formatting are free; the
// number of parts is not.
func matchParts(user, expected string) bool {
	us := splitParts(user)
	es := splitParts(expected)
	if len(us) != len(es) {
		return false
	}
	sort.Strings(us)
	sort.Strings(es)
	for i := range us {
		if us[i] != es[i] {
			return false
		}
	}
	return true
}

func splitParts(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if n := normalizePart(p); n != "" {
			out = append(out, n)
		}
	}
	return out
}
