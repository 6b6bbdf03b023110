package report

import (
	"fmt"
	"strconv"
	"strings"

	edtf "github.com/sfomuseum/go-edtf/parser"

	"github.com/pdiddy/pubmed-fetcher/pkg/types"
)

var monthNumbers = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// EDTFDate converts a "<Month> <Year>" publication date into an EDTF string:
// "2023-03" when both parts are known, "2023" when only the year is. It
// returns "" when the year is unknown or the result is not valid EDTF.
func EDTFDate(publicationDate string) string {
	parts := strings.Fields(publicationDate)
	if len(parts) != 2 {
		return ""
	}
	month, year := parts[0], parts[1]
	if year == types.UnknownField {
		return ""
	}

	candidate := year
	if m := parseMonth(month); m > 0 {
		candidate = fmt.Sprintf("%s-%02d", year, m)
	}
	if !edtf.IsValid(candidate) {
		return ""
	}
	return candidate
}

// parseMonth accepts PubMed month forms: "Mar", "March", or "03".
func parseMonth(s string) int {
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return n
		}
		return 0
	}
	if len(s) < 3 {
		return 0
	}
	return monthNumbers[strings.ToLower(s[:3])]
}
