package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNotHyperlink is returned when a cell value cannot be parsed as a
// HYPERLINK display formula.
var ErrNotHyperlink = errors.New("cell is not a hyperlink formula")

var hyperlinkURLPattern = regexp.MustCompile(`"(https?://[^"]+)"`)

// HyperlinkFormula wraps a raw URL in the display formula stored in the
// sheet's Video URL column. The raw URL itself stays in the domain; the
// formula exists only at the point of writing.
func HyperlinkFormula(url string) string {
	return fmt.Sprintf(`=HYPERLINK("%s", "Link")`, url)
}

// ExtractURL recovers the raw URL from a stored hyperlink formula. The
// stored cell is a formula, not a bare URL, so this is the single place the
// fragile reverse parse lives. Callers treat failure as recoverable.
func ExtractURL(formula string) (string, error) {
	if !strings.HasPrefix(formula, "=HYPERLINK") {
		return "", fmt.Errorf("%w: %q", ErrNotHyperlink, formula)
	}
	m := hyperlinkURLPattern.FindStringSubmatch(formula)
	if m == nil {
		return "", fmt.Errorf("%w: no quoted URL in %q", ErrNotHyperlink, formula)
	}
	return m[1], nil
}
