package sheet

import "context"

// Fixed column headers of the generated schedule table. Participant status
// columns follow these four.
const (
	ColDay   = "Day"
	ColDate  = "Date"
	ColTitle = "Video Title"
	ColURL   = "Video URL"
)

// StatusValues are the only values participants may enter in their status
// column, enforced via dropdown data validation.
var StatusValues = []string{"done", "skipped", "in progress"}

// Color is an RGB cell background with channels in [0, 1], matching the
// spreadsheet API's color model.
type Color struct {
	Red   float64
	Green float64
	Blue  float64
}

// Record is one data row read from the store, keyed by header. RowIndex is
// the 1-based sheet row (the header occupies row 1, so data starts at 2).
type Record struct {
	RowIndex int
	Values   map[string]string
}

// ConditionalRule is a boolean conditional-format rule over a rectangular
// range. Row and column bounds are 0-based, end-exclusive grid indexes.
type ConditionalRule struct {
	Formula     string
	StartRow    int
	EndRow      int
	StartColumn int
	EndColumn   int
	Background  Color
	Bold        bool
}

// Store is the narrow interface this system consumes from the external
// spreadsheet: a row/column grid with a reserved header row. Mutating
// operations fail independently; callers recover per call.
type Store interface {
	// Headers returns the values of the header row.
	Headers(ctx context.Context) ([]string, error)
	// Records returns all data rows keyed by header.
	Records(ctx context.Context) ([]Record, error)
	// CellFormula returns the underlying formula of a cell (1-based row and
	// column), not its rendered value.
	CellFormula(ctx context.Context, row, col int) (string, error)
	// Update bulk-writes the whole table (header row first) with
	// literal-formula interpretation enabled.
	Update(ctx context.Context, values [][]string) error
	// FormatHeader applies bold text and a background color to the header row.
	FormatHeader(ctx context.Context, background Color) error
	// AddConditionalFormat installs one boolean conditional-format rule.
	AddConditionalFormat(ctx context.Context, rule ConditionalRule) error
	// SetStatusValidation restricts a column (0-based) to the allowed values
	// via a dropdown, over the given number of data rows.
	SetStatusValidation(ctx context.Context, col, dataRows int, allowed []string) error
	// FreezeHeader freezes the header row.
	FreezeHeader(ctx context.Context) error
	// Share grants write permission on the spreadsheet to an account.
	Share(ctx context.Context, email string) error
}

// ColumnLetter converts a 0-based column index to its A1 letter form.
func ColumnLetter(col int) string {
	letters := ""
	for col >= 0 {
		letters = string(rune('A'+col%26)) + letters
		col = col/26 - 1
	}
	return letters
}
