package sheets

import (
	"context"
	"fmt"
	"os"
	"strings"

	"playlist_tracker_bot/internal/domain/sheet"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client adapts the Google Sheets and Drive APIs to the sheet.Store
// interface. It operates on the first worksheet of a spreadsheet looked up
// by name via Drive.
type Client struct {
	sheets        *sheets.Service
	drive         *drive.Service
	spreadsheetID string
	sheetID       int64
	sheetTitle    string
}

// NewClient authorizes with the service-account credentials file and
// resolves the spreadsheet by name.
func NewClient(ctx context.Context, credentialsFile, spreadsheetName string) (*Client, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("could not read credentials file: %w", err)
	}
	conf, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsScope, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("could not parse service account credentials: %w", err)
	}
	httpClient := conf.Client(ctx)

	sheetsSvc, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("could not create sheets service: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("could not create drive service: %w", err)
	}

	query := fmt.Sprintf("name = '%s' and mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false",
		strings.ReplaceAll(spreadsheetName, "'", `\'`))
	list, err := driveSvc.Files.List().Q(query).Fields("files(id, name)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("could not look up spreadsheet %q: %w", spreadsheetName, err)
	}
	if len(list.Files) == 0 {
		return nil, fmt.Errorf("spreadsheet %q not found", spreadsheetName)
	}
	spreadsheetID := list.Files[0].Id

	ss, err := sheetsSvc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("could not open spreadsheet %q: %w", spreadsheetName, err)
	}
	if len(ss.Sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet %q has no worksheets", spreadsheetName)
	}
	first := ss.Sheets[0].Properties

	return &Client{
		sheets:        sheetsSvc,
		drive:         driveSvc,
		spreadsheetID: spreadsheetID,
		sheetID:       first.SheetId,
		sheetTitle:    first.Title,
	}, nil
}

var _ sheet.Store = (*Client)(nil)

// Headers returns the values of the first row.
func (c *Client) Headers(ctx context.Context) ([]string, error) {
	resp, err := c.sheets.Spreadsheets.Values.
		Get(c.spreadsheetID, fmt.Sprintf("%s!1:1", c.sheetTitle)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("could not read header row: %w", err)
	}
	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("header row is empty")
	}
	headers := make([]string, 0, len(resp.Values[0]))
	for _, v := range resp.Values[0] {
		headers = append(headers, fmt.Sprintf("%v", v))
	}
	return headers, nil
}

// Records returns all data rows keyed by header, carrying their 1-based
// sheet row index.
func (c *Client) Records(ctx context.Context) ([]sheet.Record, error) {
	resp, err := c.sheets.Spreadsheets.Values.
		Get(c.spreadsheetID, c.sheetTitle).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("could not read rows: %w", err)
	}
	if len(resp.Values) < 1 {
		return nil, fmt.Errorf("sheet is empty")
	}

	headers := resp.Values[0]
	records := make([]sheet.Record, 0, len(resp.Values)-1)
	for i, row := range resp.Values[1:] {
		rec := sheet.Record{RowIndex: i + 2, Values: make(map[string]string, len(headers))}
		for col, h := range headers {
			val := ""
			if col < len(row) {
				val = fmt.Sprintf("%v", row[col])
			}
			rec.Values[fmt.Sprintf("%v", h)] = val
		}
		records = append(records, rec)
	}
	return records, nil
}

// CellFormula reads a single cell with the FORMULA render option, returning
// the stored formula rather than the rendered value.
func (c *Client) CellFormula(ctx context.Context, row, col int) (string, error) {
	a1 := fmt.Sprintf("%s!%s%d", c.sheetTitle, sheet.ColumnLetter(col-1), row)
	resp, err := c.sheets.Spreadsheets.Values.
		Get(c.spreadsheetID, a1).
		ValueRenderOption("FORMULA").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("could not read formula of %s: %w", a1, err)
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return "", nil
	}
	return fmt.Sprintf("%v", resp.Values[0][0]), nil
}

// Update bulk-writes the table starting at A1 with USER_ENTERED input, so
// hyperlink formulas are evaluated rather than stored as text.
func (c *Client) Update(ctx context.Context, values [][]string) error {
	vr := &sheets.ValueRange{Values: make([][]interface{}, 0, len(values))}
	for _, row := range values {
		cells := make([]interface{}, 0, len(row))
		for _, v := range row {
			cells = append(cells, v)
		}
		vr.Values = append(vr.Values, cells)
	}

	_, err := c.sheets.Spreadsheets.Values.
		Update(c.spreadsheetID, fmt.Sprintf("%s!A1", c.sheetTitle), vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("could not write table: %w", err)
	}
	return nil
}

// FormatHeader bolds the header row and sets its background color.
func (c *Client) FormatHeader(ctx context.Context, background sheet.Color) error {
	req := &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: &sheets.GridRange{
				SheetId:       c.sheetID,
				StartRowIndex: 0,
				EndRowIndex:   1,
			},
			Cell: &sheets.CellData{
				UserEnteredFormat: &sheets.CellFormat{
					BackgroundColor: apiColor(background),
					TextFormat:      &sheets.TextFormat{Bold: true},
				},
			},
			Fields: "userEnteredFormat(backgroundColor,textFormat)",
		},
	}
	return c.batchUpdate(ctx, req, "format header")
}

// AddConditionalFormat installs one boolean custom-formula rule.
func (c *Client) AddConditionalFormat(ctx context.Context, rule sheet.ConditionalRule) error {
	format := &sheets.CellFormat{BackgroundColor: apiColor(rule.Background)}
	if rule.Bold {
		format.TextFormat = &sheets.TextFormat{Bold: true}
	}
	req := &sheets.Request{
		AddConditionalFormatRule: &sheets.AddConditionalFormatRuleRequest{
			Index: 0,
			Rule: &sheets.ConditionalFormatRule{
				Ranges: []*sheets.GridRange{{
					SheetId:          c.sheetID,
					StartRowIndex:    int64(rule.StartRow),
					EndRowIndex:      int64(rule.EndRow),
					StartColumnIndex: int64(rule.StartColumn),
					EndColumnIndex:   int64(rule.EndColumn),
				}},
				BooleanRule: &sheets.BooleanRule{
					Condition: &sheets.BooleanCondition{
						Type:   "CUSTOM_FORMULA",
						Values: []*sheets.ConditionValue{{UserEnteredValue: rule.Formula}},
					},
					Format: format,
				},
			},
		},
	}
	return c.batchUpdate(ctx, req, "add conditional format")
}

// SetStatusValidation restricts a participant column to the allowed values
// via a dropdown.
func (c *Client) SetStatusValidation(ctx context.Context, col, dataRows int, allowed []string) error {
	values := make([]*sheets.ConditionValue, 0, len(allowed))
	for _, v := range allowed {
		values = append(values, &sheets.ConditionValue{UserEnteredValue: v})
	}
	req := &sheets.Request{
		SetDataValidation: &sheets.SetDataValidationRequest{
			Range: &sheets.GridRange{
				SheetId:          c.sheetID,
				StartRowIndex:    1,
				EndRowIndex:      int64(1 + dataRows),
				StartColumnIndex: int64(col),
				EndColumnIndex:   int64(col + 1),
			},
			Rule: &sheets.DataValidationRule{
				Condition: &sheets.BooleanCondition{
					Type:   "ONE_OF_LIST",
					Values: values,
				},
				ShowCustomUi: true,
				Strict:       false,
			},
		},
	}
	return c.batchUpdate(ctx, req, "set status validation")
}

// FreezeHeader freezes the first row.
func (c *Client) FreezeHeader(ctx context.Context) error {
	req := &sheets.Request{
		UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
			Properties: &sheets.SheetProperties{
				SheetId:        c.sheetID,
				GridProperties: &sheets.GridProperties{FrozenRowCount: 1},
			},
			Fields: "gridProperties.frozenRowCount",
		},
	}
	return c.batchUpdate(ctx, req, "freeze header")
}

// Share grants writer permission on the spreadsheet to the given account.
func (c *Client) Share(ctx context.Context, email string) error {
	_, err := c.drive.Permissions.
		Create(c.spreadsheetID, &drive.Permission{
			Type:         "user",
			Role:         "writer",
			EmailAddress: email,
		}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("could not share spreadsheet with %s: %w", email, err)
	}
	return nil
}

func (c *Client) batchUpdate(ctx context.Context, req *sheets.Request, what string) error {
	_, err := c.sheets.Spreadsheets.
		BatchUpdate(c.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{req},
		}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("could not %s: %w", what, err)
	}
	return nil
}

func apiColor(c sheet.Color) *sheets.Color {
	return &sheets.Color{Red: c.Red, Green: c.Green, Blue: c.Blue}
}
