package utils

import (
	"strconv"
	"strings"
)

// ToInt coerces a spreadsheet cell value to an int.
//
// Excelize hands every cell back as a string, and exports routinely store
// counts as floats ("5", "5.0", " 5 "), so integer parsing falls back to
// float parsing before giving up. Returns 0 and false when the value does not
// represent a whole number.
func ToInt(val string) (int, bool) {
	s := strings.TrimSpace(val)
	if s == "" {
		return 0, false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	i := int(f)
	if float64(i) != f {
		return 0, false
	}
	return i, true
}

// NormalizeCell trims surrounding whitespace from a cell value. Exported
// workbooks frequently pad identifiers with stray spaces.
func NormalizeCell(val string) string {
	return strings.TrimSpace(val)
}
