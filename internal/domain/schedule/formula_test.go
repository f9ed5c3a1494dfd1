package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHyperlinkFormulaRoundTrip(t *testing.T) {
	url := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	formula := HyperlinkFormula(url)
	assert.Equal(t, `=HYPERLINK("https://www.youtube.com/watch?v=dQw4w9WgXcQ", "Link")`, formula)

	got, err := ExtractURL(formula)
	require.NoError(t, err)
	assert.Equal(t, url, got)
}

func TestExtractURLFailures(t *testing.T) {
	tests := []struct {
		name    string
		formula string
	}{
		{"bare value", "https://example.com"},
		{"empty cell", ""},
		{"other formula", `=SUM(A1:A2)`},
		{"hyperlink without URL", `=HYPERLINK(A1, "Link")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractURL(tt.formula)
			assert.ErrorIs(t, err, ErrNotHyperlink)
		})
	}
}
