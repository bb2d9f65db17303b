package sheets

import (
	"context"
	"fmt"

	"github.com/ancarat/orderdesk/internal/config"
	"github.com/ancarat/orderdesk/pkg/apperror"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SettingsFunc returns the current store references. The client reads them
// on every call so an admin hot-swap takes effect without a rebuild.
type SettingsFunc func() config.Settings

// Client talks to the Google Sheets API. It implements both the ledger
// TabularStore (bound to the configured ledger spreadsheet) and the
// ReferenceStore used for agent and delivery-date ranges.
type Client struct {
	svc      *sheets.Service
	settings SettingsFunc
}

// NewClient builds a Sheets client from service-account credentials JSON.
func NewClient(ctx context.Context, credentialsJSON string, settings SettingsFunc) (*Client, error) {
	if credentialsJSON == "" {
		return nil, apperror.Wrap(apperror.ErrConfigMissing, "SERVICE_ACCOUNT_JSON is not set")
	}

	creds, err := google.CredentialsFromJSON(ctx, []byte(credentialsJSON), sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parsing service account credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &Client{svc: svc, settings: settings}, nil
}

func (c *Client) ledgerID() (string, error) {
	id := c.settings().LedgerSheetID
	if id == "" {
		return "", apperror.Wrap(apperror.ErrConfigMissing, "LEDGER_SHEET_ID is not set")
	}
	return id, nil
}

// ListSegments returns the titles of all sheets in the ledger spreadsheet.
func (c *Client) ListSegments(ctx context.Context) ([]string, error) {
	id, err := c.ledgerID()
	if err != nil {
		return nil, err
	}

	resp, err := c.svc.Spreadsheets.Get(id).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrStoreUnavailable, err.Error())
	}

	titles := make([]string, 0, len(resp.Sheets))
	for _, s := range resp.Sheets {
		if s.Properties != nil {
			titles = append(titles, s.Properties.Title)
		}
	}
	return titles, nil
}

// CreateSegment adds a new sheet with the given title.
func (c *Client) CreateSegment(ctx context.Context, title string) error {
	id, err := c.ledgerID()
	if err != nil {
		return err
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(id, req).Context(ctx).Do(); err != nil {
		return apperror.Wrap(apperror.ErrStoreUnavailable, err.Error())
	}
	return nil
}

// WriteHeader writes the header cells to row 1 of a segment.
func (c *Client) WriteHeader(ctx context.Context, title string, header []string) error {
	id, err := c.ledgerID()
	if err != nil {
		return err
	}

	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	rangeRef := fmt.Sprintf("%s!A1:%s1", title, columnLetter(len(header)))
	vr := &sheets.ValueRange{Values: [][]interface{}{cells}}

	_, err = c.svc.Spreadsheets.Values.Update(id, rangeRef, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return apperror.Wrap(apperror.ErrStoreUnavailable, err.Error())
	}
	return nil
}

// ReadColumn reads column A below the header row of a segment.
func (c *Client) ReadColumn(ctx context.Context, title string) ([]string, error) {
	id, err := c.ledgerID()
	if err != nil {
		return nil, err
	}

	resp, err := c.svc.Spreadsheets.Values.Get(id, title+"!A2:A").Context(ctx).Do()
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrStoreUnavailable, err.Error())
	}

	values := make([]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if s, ok := row[0].(string); ok {
			values = append(values, s)
		}
	}
	return values, nil
}

// AppendRows appends rows to a segment with insert-rows semantics.
func (c *Client) AppendRows(ctx context.Context, title string, rows [][]interface{}) error {
	id, err := c.ledgerID()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	rangeRef := fmt.Sprintf("%s!A:%s", title, columnLetter(len(rows[0])))
	vr := &sheets.ValueRange{Values: rows}

	_, err = c.svc.Spreadsheets.Values.Append(id, rangeRef, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return apperror.Wrap(apperror.ErrStoreUnavailable, err.Error())
	}
	return nil
}

// ReadRange reads a reference range from an arbitrary spreadsheet as strings.
func (c *Client) ReadRange(ctx context.Context, sheetID, rangeRef string) ([][]string, error) {
	if sheetID == "" {
		return nil, apperror.Wrap(apperror.ErrConfigMissing, "reference sheet id is not set")
	}

	resp, err := c.svc.Spreadsheets.Values.Get(sheetID, rangeRef).
		ValueRenderOption("FORMATTED_VALUE").Context(ctx).Do()
	if err != nil {
		return nil, apperror.Wrap(apperror.ErrStoreUnavailable, err.Error())
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// columnLetter converts a 1-based column count to its A1-notation letter.
func columnLetter(n int) string {
	letters := ""
	for n > 0 {
		n--
		letters = string(rune('A'+n%26)) + letters
		n /= 26
	}
	return letters
}
